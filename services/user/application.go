package user

import (
	"context"
	"strings"
	"time"

	"tourhub/models"
	"tourhub/utils"

	"go.uber.org/zap"
)

// ApplyForGuide moves a user from none/Rejected to Requested.
func (s *DefaultUserService) ApplyForGuide(ctx context.Context, email string, req GuideApplicationRequest) (models.UpdateCount, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Reason = strings.TrimSpace(req.Reason)
	req.CVLink = strings.TrimSpace(req.CVLink)
	if req.Title == "" || req.Reason == "" || req.CVLink == "" {
		return models.UpdateCount{}, utils.Validation("title, reason and cvLink are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return models.UpdateCount{}, utils.Internal("failed to submit application", err)
	}
	if user == nil {
		return models.UpdateCount{}, utils.NotFound("user not found")
	}
	if user.Status == models.StatusRequested {
		return models.UpdateCount{}, utils.Validation("You have already requested, wait for some time.")
	}

	app := models.GuideApplication{
		Title:       req.Title,
		Reason:      req.Reason,
		CVLink:      req.CVLink,
		RequestedAt: time.Now(),
	}
	count, err := s.Repo.SubmitGuideApplication(ctx, email, app)
	if err != nil {
		return count, utils.Internal("failed to submit application", err)
	}
	s.Logger.Info("Guide application submitted", zap.String("email", email))
	return count, nil
}

func (s *DefaultUserService) ListCandidates(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx, models.UserFilter{Status: models.StatusRequested})
	if err != nil {
		return nil, utils.Internal("failed to fetch candidates", err)
	}
	return users, nil
}

// Decide applies an admin's approve/reject directive to a Requested candidate.
func (s *DefaultUserService) Decide(ctx context.Context, email, action string) (models.UpdateCount, error) {
	now := time.Now()
	var decision models.ApplicationDecision
	switch action {
	case ActionApprove:
		decision = models.ApplicationDecision{Status: models.StatusApproved, Role: models.RoleGuide, ApprovedAt: &now}
	case ActionReject:
		decision = models.ApplicationDecision{Status: models.StatusRejected, RejectedAt: &now}
	default:
		return models.UpdateCount{}, utils.Validation("Invalid action")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return models.UpdateCount{}, utils.Internal("failed to update candidate", err)
	}
	if user == nil {
		return models.UpdateCount{}, utils.NotFound("user not found")
	}
	if user.Status != models.StatusRequested {
		return models.UpdateCount{}, utils.Validation("user has no pending guide application")
	}

	count, err := s.Repo.ApplyDecision(ctx, email, decision)
	if err != nil {
		return count, utils.Internal("failed to update candidate", err)
	}
	s.Logger.Info("Guide application decided", zap.String("email", email), zap.String("action", action))
	return count, nil
}
