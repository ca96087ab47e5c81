package manager

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

type GenerateRequest struct {
	BusinessURL string
	Preferences models.GenerationPreferences
}

// Generate runs the full pipeline: business profile, industry news, post
// generation. Each step needs the previous one to succeed. Every prior
// result is cleared first, so nothing from an earlier run survives.
//
// Failures land in the error slot of the stage that raised them and are
// also returned. Starting Generate again while a run is in flight cancels
// the older run; it then returns ErrSuperseded and writes nothing more.
func (m *Manager) Generate(ctx context.Context, req GenerateRequest) error {
	m.mu.Lock()
	runCtx, id := m.genRun.beginLocked(ctx)
	m.resetLocked()
	m.state.Generation.Running = true
	m.mu.Unlock()

	log := m.log.WithField("run_id", id)
	log.WithField("url", req.BusinessURL).Info("starting generation run")

	err := m.generate(runCtx, id, req, log)
	if err != nil && !errors.Is(err, ErrSuperseded) {
		err = m.routeStageError(ctx, id, err, log)
	}

	m.mu.Lock()
	if m.genRun.endLocked(id) {
		m.state.Generation.Running = false
		m.state.Generation.NewsLoading = false
		m.state.Generation.GenerationLoading = false
	}
	m.mu.Unlock()
	return err
}

func (m *Manager) generate(ctx context.Context, id string, req GenerateRequest, log *logrus.Entry) error {
	if err := validateBusinessURL(req.BusinessURL); err != nil {
		return stageError(StageProfile, err.Error(), err)
	}
	prefs := withDefaults(req.Preferences)
	// Bad preferences are not a stage failure; the user is alerted instead.
	if err := validatePreferences(prefs); err != nil {
		return stageError(StageOther, err.Error(), err)
	}

	profile, err := m.api.BusinessProfile(ctx, strings.TrimSpace(req.BusinessURL))
	if err != nil {
		return stageError(StageProfile, backend.MessageOr(err, msgProfileFailed), err)
	}
	if profile == nil {
		profile = &models.BusinessProfile{}
	}
	if err := m.applyRun(&m.genRun, id, func(v *View) {
		v.Generation.Profile = profile
	}); err != nil {
		return err
	}
	if !profile.HasIndustry() {
		return stageError(StageProfile, msgIndustryMissing, nil)
	}
	log.WithField("industry", profile.Industry).Debug("business profile ready")

	if err := m.applyRun(&m.genRun, id, func(v *View) {
		v.Generation.NewsLoading = true
		v.Generation.NewsError = ""
	}); err != nil {
		return err
	}
	news, err := m.api.IndustryNews(ctx, profile.Industry)
	if err != nil {
		return stageError(StageNews, backend.MessageOr(err, msgNewsFailed), err)
	}
	if news == nil {
		news = []models.NewsItem{}
	}
	if err := m.applyRun(&m.genRun, id, func(v *View) {
		v.Generation.News = news
		v.Generation.GenerationLoading = true
		v.Generation.GenerationError = ""
	}); err != nil {
		return err
	}
	log.WithField("headlines", len(news)).Debug("industry news ready")

	posts, err := m.api.GeneratePosts(ctx, backend.GeneratePostsRequest{
		Name:     profile.Name,
		Industry: profile.Industry,
		Tone:     prefs.Tone,
		PostType: prefs.PostType,
		News:     models.Headlines(news),
		Count:    prefs.Count,
	})
	if err != nil {
		return stageError(StageGeneration, backend.MessageOr(err, msgGenerateFailed), err)
	}
	if posts == nil {
		posts = []string{}
	}
	if err := m.applyRun(&m.genRun, id, func(v *View) {
		v.Generation.Drafts = posts
	}); err != nil {
		return err
	}

	log.WithField("posts", len(posts)).Info("generation run finished")
	return nil
}

// routeStageError records err in its stage's slot, or alerts for
// StageOther. Errors from a run that is no longer current are dropped.
func (m *Manager) routeStageError(ctx context.Context, id string, err error, log *logrus.Entry) error {
	stage := StageOf(err)
	message := err.Error()

	m.mu.Lock()
	if m.genRun.id != id {
		m.mu.Unlock()
		return ErrSuperseded
	}
	switch stage {
	case StageProfile:
		m.state.Generation.ProfileError = message
	case StageNews:
		m.state.Generation.NewsError = message
	case StageGeneration:
		m.state.Generation.GenerationError = message
	}
	m.mu.Unlock()

	log.WithFields(logrus.Fields{"stage": stage.String()}).WithError(err).Warn("generation run failed")
	if stage == StageOther {
		m.alert(ctx, message)
	}
	return err
}

// resetLocked clears every result a generation run produces, along with
// the schedule mirror and any edit in progress. It must be called with
// m.mu held.
func (m *Manager) resetLocked() {
	m.state.Generation = GenerationState{}
	m.setScheduleLocked(m.nextScheduleSeqLocked(), models.Schedule{})
	m.state.Publish = nil
	m.state.DraftEdit = nil
	m.state.DayEdit = nil
}

func withDefaults(prefs models.GenerationPreferences) models.GenerationPreferences {
	defaults := models.DefaultPreferences()
	if strings.TrimSpace(prefs.Tone) == "" {
		prefs.Tone = defaults.Tone
	}
	if strings.TrimSpace(prefs.PostType) == "" {
		prefs.PostType = defaults.PostType
	}
	return prefs
}
