// ABOUTME: Push/pull of checkins, sessions, and events through Charm KV.
// ABOUTME: Checkin merges keep the newer UpdatedAt; provenance stays one-way.
package charm

import (
	"errors"
	"fmt"

	"github.com/rollready/rollready/internal/models"
	"github.com/rollready/rollready/internal/storage"
)

// PushSummary counts records pushed to the cloud KV.
type PushSummary struct {
	Checkins int
	Sessions int
	Events   int
}

// PullSummary counts records applied from the cloud KV.
type PullSummary struct {
	Checkins int
	Sessions int
	Events   int
	Skipped  int
}

// Push writes every local record into the KV store and syncs.
func (c *Client) Push(repo storage.Repository) (*PushSummary, error) {
	summary := &PushSummary{}

	checkins, err := repo.ListCheckins(0)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	for _, ch := range checkins {
		data, err := marshalJSON(ch)
		if err != nil {
			return nil, fmt.Errorf("marshal checkin %s: %w", ch.Date, err)
		}
		if err := c.set(CheckinPrefix+ch.Date, data); err != nil {
			return nil, err
		}
		summary.Checkins++
	}

	sessions, err := repo.ListSessions(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		data, err := marshalJSON(s)
		if err != nil {
			return nil, fmt.Errorf("marshal session %s: %w", s.ID, err)
		}
		if err := c.set(SessionPrefix+s.ID.String(), data); err != nil {
			return nil, err
		}
		summary.Sessions++
	}

	events, err := repo.ListEvents(0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for _, e := range events {
		data, err := marshalJSON(e)
		if err != nil {
			return nil, fmt.Errorf("marshal event %s: %w", e.ID, err)
		}
		if err := c.set(EventPrefix+e.ID.String(), data); err != nil {
			return nil, err
		}
		summary.Events++
	}

	return summary, nil
}

// Pull applies cloud records into the local repository. A cloud
// checkin only replaces the local one when its UpdatedAt is newer, so
// a manual override on this device survives a stale remote copy.
func (c *Client) Pull(repo storage.Repository) (*PullSummary, error) {
	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync kv: %w", err)
	}

	summary := &PullSummary{}

	checkinData, err := c.listByPrefix(CheckinPrefix)
	if err != nil {
		return nil, fmt.Errorf("list cloud checkins: %w", err)
	}
	for _, data := range checkinData {
		remote, err := unmarshalJSON[models.ReadinessCheckin](data)
		if err != nil {
			summary.Skipped++
			continue
		}
		local, err := repo.GetCheckinByDate(remote.Date)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if local != nil && !remote.UpdatedAt.After(local.UpdatedAt) {
			summary.Skipped++
			continue
		}
		if err := repo.UpsertCheckin(remote); err != nil {
			return nil, fmt.Errorf("apply checkin %s: %w", remote.Date, err)
		}
		summary.Checkins++
	}

	sessionData, err := c.listByPrefix(SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list cloud sessions: %w", err)
	}
	for _, data := range sessionData {
		remote, err := unmarshalJSON[models.TrainingSession](data)
		if err != nil {
			summary.Skipped++
			continue
		}
		if _, err := repo.GetSession(remote.ID.String()); err == nil {
			summary.Skipped++
			continue
		}
		if err := repo.CreateSession(remote); err != nil {
			return nil, fmt.Errorf("apply session %s: %w", remote.ID, err)
		}
		summary.Sessions++
	}

	eventData, err := c.listByPrefix(EventPrefix)
	if err != nil {
		return nil, fmt.Errorf("list cloud events: %w", err)
	}
	for _, data := range eventData {
		remote, err := unmarshalJSON[models.CompetitionEvent](data)
		if err != nil {
			summary.Skipped++
			continue
		}
		if eventExists(repo, remote) {
			summary.Skipped++
			continue
		}
		if err := repo.CreateEvent(remote); err != nil {
			return nil, fmt.Errorf("apply event %s: %w", remote.ID, err)
		}
		summary.Events++
	}

	return summary, nil
}

func eventExists(repo storage.Repository, e *models.CompetitionEvent) bool {
	events, err := repo.ListEvents(0)
	if err != nil {
		return false
	}
	for _, existing := range events {
		if existing.ID == e.ID {
			return true
		}
	}
	return false
}
