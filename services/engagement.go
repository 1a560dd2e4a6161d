package services

import (
	"errors"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

// EngagementService implements the daily reward and streak rules: one jelly
// per user per calendar day, with the login streak tracked independently of
// reward eligibility.
type EngagementService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const ENGAGEMENT_SVC = "engagement_svc"

func (svc EngagementService) Id() string {
	return ENGAGEMENT_SVC
}

func (svc *EngagementService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *EngagementService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

func (svc *EngagementService) getLedger(userID string) (*model.Ledger, error) {
	ledger, err := svc.sqlSvc.Ledgers().GetLedger(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	return ledger, nil
}

// CheckEligibility is read-only and safe to call repeatedly.
func (svc *EngagementService) CheckEligibility(userID string) (*dto.AttendanceStatusResponse, error) {
	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	canReceive := ledger.LastJellyDate == nil || *ledger.LastJellyDate != today

	return &dto.AttendanceStatusResponse{CanReceive: canReceive}, nil
}

// nextStreak applies the streak transition: same day leaves it unchanged,
// a one-day gap increments, anything else resets to 1.
func nextStreak(ledger *model.Ledger, today string) int {
	if ledger.LastActivityDate == nil {
		return 1
	}

	gap, ok := shared.DayGap(*ledger.LastActivityDate, today)
	if !ok {
		return 1
	}

	switch gap {
	case 0:
		return ledger.LoginStreak
	case 1:
		return ledger.LoginStreak + 1
	default:
		return 1
	}
}

// ClaimReward grants today's jelly at most once. The grant itself is a
// guarded update in the store, so two concurrent claims for the same user
// resolve to exactly one increment; the loser sees granted=false with the
// already-updated balance.
func (svc *EngagementService) ClaimReward(userID, mood string) (granted bool, ledger *model.Ledger, err error) {
	ledger, err = svc.getLedger(userID)
	if err != nil {
		return false, nil, err
	}

	today := shared.Today()
	if ledger.LastJellyDate != nil && *ledger.LastJellyDate == today {
		return false, ledger, nil
	}

	if mood != "" {
		if err := svc.sqlSvc.Ledgers().CreateMoodEntry(userID, today, mood); err != nil {
			// A duplicate means today's mood was already checked in; the
			// entry is immutable so this is not an error.
			if !isUniqueViolation(err) {
				log.WithError(err).WithField("user_id", userID).Warn("Failed to record mood entry")
			}
		}
	}

	streak := nextStreak(ledger, today)
	granted, err = svc.sqlSvc.Ledgers().ClaimJelly(userID, today, streak)
	if err != nil {
		return false, nil, svc.sqlSvc.HandleError(err)
	}
	if granted {
		rewardsGrantedTotal.Inc()
	} else {
		rewardsDuplicateTotal.Inc()
	}

	ledger, err = svc.getLedger(userID)
	if err != nil {
		return false, nil, err
	}
	return granted, ledger, nil
}

// TrackLogin updates the streak without granting jelly. The original client
// calls this on every app open.
func (svc *EngagementService) TrackLogin(userID string) (*dto.LoginTrackResponse, error) {
	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	streak := nextStreak(ledger, today)

	if err := svc.sqlSvc.Ledgers().TrackActivity(userID, today, streak); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.LoginTrackResponse{Success: true, LoginStreak: streak}, nil
}

func (svc *EngagementService) GetJelly(userID string) (*dto.JellyResponse, error) {
	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	return &dto.JellyResponse{
		JellyCount:    ledger.JellyCount,
		LastJellyDate: ledger.LastJellyDate,
	}, nil
}

func (svc *EngagementService) MoodHistory(userID string, limit int) (*dto.MoodHistoryResponse, error) {
	if _, err := svc.getLedger(userID); err != nil {
		return nil, err
	}

	entries, err := svc.sqlSvc.Ledgers().ListMoodEntries(userID, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.MoodHistoryResponse{Moods: make([]dto.MoodEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Moods = append(resp.Moods, dto.MoodEntryResponse{Date: e.Date, Mood: e.Mood})
	}
	return resp, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
