package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nestlog/nestlog/pkg/events"
)

// AddSleep inserts a sleep record and returns it with its doc id set.
func (s *Store) AddSleep(ctx context.Context, rec events.Sleep) (events.Sleep, error) {
	rec.DocID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sleep (doc_id, child_id, start_ms, end_ms, quality) VALUES (?, ?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.Start), timeToMillis(rec.End), rec.Quality)
	if err != nil {
		return events.Sleep{}, fmt.Errorf("insert sleep: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("sleep added", "child", rec.ChildID, "doc", rec.DocID)
	return rec, nil
}

// Sleeps returns every sleep record for a child, through the cache.
func (s *Store) Sleeps(ctx context.Context, childID string) ([]events.Sleep, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategorySleep, childID); ok {
			if recs, ok := v.([]events.Sleep); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, start_ms, end_ms, quality FROM sleep WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query sleep: %w", err)
	}
	defer rows.Close()

	var out []events.Sleep
	for rows.Next() {
		rec := events.Sleep{ChildID: childID}
		var start, end int64
		if err := rows.Scan(&rec.DocID, &start, &end, &rec.Quality); err != nil {
			return nil, fmt.Errorf("scan sleep: %w", err)
		}
		rec.Start = timeFromMillis(start)
		rec.End = timeFromMillis(end)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategorySleep, childID, out)
	}
	return out, nil
}

// SleepPatch is a partial sleep update; nil fields are left unchanged.
type SleepPatch struct {
	Start   *time.Time
	End     *time.Time
	Quality *int
}

// UpdateSleep applies a partial update to one sleep record.
func (s *Store) UpdateSleep(ctx context.Context, childID, docID string, p SleepPatch) error {
	var set []string
	var args []any
	if p.Start != nil {
		set = append(set, "start_ms = ?")
		args = append(args, timeToMillis(*p.Start))
	}
	if p.End != nil {
		set = append(set, "end_ms = ?")
		args = append(args, timeToMillis(*p.End))
	}
	if p.Quality != nil {
		set = append(set, "quality = ?")
		args = append(args, *p.Quality)
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("sleep", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteSleep removes one sleep record.
func (s *Store) DeleteSleep(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM sleep WHERE child_id = ? AND doc_id = ?`, childID, docID)
}

// AddFeed inserts a feed record. The nursing side is persisted only for
// nursing feeds.
func (s *Store) AddFeed(ctx context.Context, rec events.Feed) (events.Feed, error) {
	rec.DocID = uuid.NewString()
	side := ""
	if rec.Type == events.FeedNursing {
		side = string(rec.Side)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feed (doc_id, child_id, date_time_ms, type, amount, duration, side, description, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.DateTime), string(rec.Type),
		rec.Amount, rec.Duration, side, rec.Description, rec.Notes)
	if err != nil {
		return events.Feed{}, fmt.Errorf("insert feed: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("feed added", "child", rec.ChildID, "doc", rec.DocID, "type", rec.Type)
	return rec, nil
}

// Feeds returns every feed record for a child, through the cache.
func (s *Store) Feeds(ctx context.Context, childID string) ([]events.Feed, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategoryFeed, childID); ok {
			if recs, ok := v.([]events.Feed); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, date_time_ms, type, amount, duration, side, description, notes
		 FROM feed WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	var out []events.Feed
	for rows.Next() {
		rec := events.Feed{ChildID: childID}
		var ms int64
		var ftype, side string
		if err := rows.Scan(&rec.DocID, &ms, &ftype, &rec.Amount, &rec.Duration,
			&side, &rec.Description, &rec.Notes); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		rec.DateTime = timeFromMillis(ms)
		rec.Type = events.FeedType(ftype)
		rec.Side = events.Side(side)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategoryFeed, childID, out)
	}
	return out, nil
}

// FeedPatch is a partial feed update; nil fields are left unchanged.
type FeedPatch struct {
	DateTime    *time.Time
	Type        *events.FeedType
	Amount      *float64
	Duration    *int
	Side        *events.Side
	Description *string
	Notes       *string
}

// UpdateFeed applies a partial update to one feed record.
func (s *Store) UpdateFeed(ctx context.Context, childID, docID string, p FeedPatch) error {
	var set []string
	var args []any
	if p.DateTime != nil {
		set = append(set, "date_time_ms = ?")
		args = append(args, timeToMillis(*p.DateTime))
	}
	if p.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*p.Type))
	}
	if p.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, *p.Amount)
	}
	if p.Duration != nil {
		set = append(set, "duration = ?")
		args = append(args, *p.Duration)
	}
	if p.Side != nil {
		set = append(set, "side = ?")
		args = append(args, string(*p.Side))
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *p.Notes)
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("feed", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteFeed removes one feed record.
func (s *Store) DeleteFeed(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM feed WHERE child_id = ? AND doc_id = ?`, childID, docID)
}

// AddDiaper inserts a diaper record. Pee fields persist only for
// pee/mixed types and poo fields only for poo/mixed, mirroring how the
// fields appear on the record itself.
func (s *Store) AddDiaper(ctx context.Context, rec events.Diaper) (events.Diaper, error) {
	rec.DocID = uuid.NewString()
	var peeAmount, pooAmount, pooColor, pooConsistency string
	if rec.Type.HasPee() {
		peeAmount = string(rec.PeeAmount)
	}
	if rec.Type.HasPoo() {
		pooAmount = string(rec.PooAmount)
		pooColor = string(rec.PooColor)
		pooConsistency = string(rec.PooConsistency)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO diaper (doc_id, child_id, date_time_ms, type, pee_amount, poo_amount, poo_color, poo_consistency, has_rash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.DateTime), string(rec.Type),
		peeAmount, pooAmount, pooColor, pooConsistency, rec.HasRash)
	if err != nil {
		return events.Diaper{}, fmt.Errorf("insert diaper: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("diaper added", "child", rec.ChildID, "doc", rec.DocID, "type", rec.Type)
	return rec, nil
}

// Diapers returns every diaper record for a child, through the cache.
func (s *Store) Diapers(ctx context.Context, childID string) ([]events.Diaper, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategoryDiaper, childID); ok {
			if recs, ok := v.([]events.Diaper); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, date_time_ms, type, pee_amount, poo_amount, poo_color, poo_consistency, has_rash
		 FROM diaper WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query diaper: %w", err)
	}
	defer rows.Close()

	var out []events.Diaper
	for rows.Next() {
		rec := events.Diaper{ChildID: childID}
		var ms int64
		var dtype, peeAmount, pooAmount, pooColor, pooConsistency string
		if err := rows.Scan(&rec.DocID, &ms, &dtype, &peeAmount, &pooAmount,
			&pooColor, &pooConsistency, &rec.HasRash); err != nil {
			return nil, fmt.Errorf("scan diaper: %w", err)
		}
		rec.DateTime = timeFromMillis(ms)
		rec.Type = events.DiaperType(dtype)
		rec.PeeAmount = events.DiaperAmount(peeAmount)
		rec.PooAmount = events.DiaperAmount(pooAmount)
		rec.PooColor = events.PooColor(pooColor)
		rec.PooConsistency = events.PooConsistency(pooConsistency)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategoryDiaper, childID, out)
	}
	return out, nil
}

// DiaperPatch is a partial diaper update; nil fields are left unchanged.
type DiaperPatch struct {
	DateTime       *time.Time
	Type           *events.DiaperType
	PeeAmount      *events.DiaperAmount
	PooAmount      *events.DiaperAmount
	PooColor       *events.PooColor
	PooConsistency *events.PooConsistency
	HasRash        *bool
}

// UpdateDiaper applies a partial update to one diaper record.
func (s *Store) UpdateDiaper(ctx context.Context, childID, docID string, p DiaperPatch) error {
	var set []string
	var args []any
	if p.DateTime != nil {
		set = append(set, "date_time_ms = ?")
		args = append(args, timeToMillis(*p.DateTime))
	}
	if p.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*p.Type))
	}
	if p.PeeAmount != nil {
		set = append(set, "pee_amount = ?")
		args = append(args, string(*p.PeeAmount))
	}
	if p.PooAmount != nil {
		set = append(set, "poo_amount = ?")
		args = append(args, string(*p.PooAmount))
	}
	if p.PooColor != nil {
		set = append(set, "poo_color = ?")
		args = append(args, string(*p.PooColor))
	}
	if p.PooConsistency != nil {
		set = append(set, "poo_consistency = ?")
		args = append(args, string(*p.PooConsistency))
	}
	if p.HasRash != nil {
		set = append(set, "has_rash = ?")
		args = append(args, *p.HasRash)
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("diaper", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteDiaper removes one diaper record.
func (s *Store) DeleteDiaper(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM diaper WHERE child_id = ? AND doc_id = ?`, childID, docID)
}

// AddActivity inserts an activity record.
func (s *Store) AddActivity(ctx context.Context, rec events.Activity) (events.Activity, error) {
	rec.DocID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (doc_id, child_id, date_time_ms, type) VALUES (?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.DateTime), string(rec.Type))
	if err != nil {
		return events.Activity{}, fmt.Errorf("insert activity: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("activity added", "child", rec.ChildID, "doc", rec.DocID, "type", rec.Type)
	return rec, nil
}

// Activities returns every activity record for a child, through the cache.
func (s *Store) Activities(ctx context.Context, childID string) ([]events.Activity, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategoryActivity, childID); ok {
			if recs, ok := v.([]events.Activity); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, date_time_ms, type FROM activity WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []events.Activity
	for rows.Next() {
		rec := events.Activity{ChildID: childID}
		var ms int64
		var atype string
		if err := rows.Scan(&rec.DocID, &ms, &atype); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		rec.DateTime = timeFromMillis(ms)
		rec.Type = events.ActivityType(atype)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategoryActivity, childID, out)
	}
	return out, nil
}

// ActivityPatch is a partial activity update; nil fields are left unchanged.
type ActivityPatch struct {
	DateTime *time.Time
	Type     *events.ActivityType
}

// UpdateActivity applies a partial update to one activity record.
func (s *Store) UpdateActivity(ctx context.Context, childID, docID string, p ActivityPatch) error {
	var set []string
	var args []any
	if p.DateTime != nil {
		set = append(set, "date_time_ms = ?")
		args = append(args, timeToMillis(*p.DateTime))
	}
	if p.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*p.Type))
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("activity", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteActivity removes one activity record.
func (s *Store) DeleteActivity(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM activity WHERE child_id = ? AND doc_id = ?`, childID, docID)
}

// AddMilestone inserts a milestone record.
func (s *Store) AddMilestone(ctx context.Context, rec events.Milestone) (events.Milestone, error) {
	rec.DocID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO milestone (doc_id, child_id, date_time_ms, type) VALUES (?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.DateTime), string(rec.Type))
	if err != nil {
		return events.Milestone{}, fmt.Errorf("insert milestone: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("milestone added", "child", rec.ChildID, "doc", rec.DocID, "type", rec.Type)
	return rec, nil
}

// Milestones returns every milestone record for a child, through the cache.
func (s *Store) Milestones(ctx context.Context, childID string) ([]events.Milestone, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategoryMilestone, childID); ok {
			if recs, ok := v.([]events.Milestone); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, date_time_ms, type FROM milestone WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query milestone: %w", err)
	}
	defer rows.Close()

	var out []events.Milestone
	for rows.Next() {
		rec := events.Milestone{ChildID: childID}
		var ms int64
		var mtype string
		if err := rows.Scan(&rec.DocID, &ms, &mtype); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		rec.DateTime = timeFromMillis(ms)
		rec.Type = events.MilestoneType(mtype)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategoryMilestone, childID, out)
	}
	return out, nil
}

// MilestonePatch is a partial milestone update; nil fields are left unchanged.
type MilestonePatch struct {
	DateTime *time.Time
	Type     *events.MilestoneType
}

// UpdateMilestone applies a partial update to one milestone record.
func (s *Store) UpdateMilestone(ctx context.Context, childID, docID string, p MilestonePatch) error {
	var set []string
	var args []any
	if p.DateTime != nil {
		set = append(set, "date_time_ms = ?")
		args = append(args, timeToMillis(*p.DateTime))
	}
	if p.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*p.Type))
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("milestone", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteMilestone removes one milestone record.
func (s *Store) DeleteMilestone(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM milestone WHERE child_id = ? AND doc_id = ?`, childID, docID)
}

// AddWeight inserts a weight record.
func (s *Store) AddWeight(ctx context.Context, rec events.Weight) (events.Weight, error) {
	rec.DocID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weight (doc_id, child_id, date_time_ms, pounds, ounces) VALUES (?, ?, ?, ?, ?)`,
		rec.DocID, rec.ChildID, timeToMillis(rec.DateTime), rec.Pounds, rec.Ounces)
	if err != nil {
		return events.Weight{}, fmt.Errorf("insert weight: %w", err)
	}
	s.invalidate(rec.ChildID)
	s.logger.Debug("weight added", "child", rec.ChildID, "doc", rec.DocID)
	return rec, nil
}

// Weights returns every weight record for a child, through the cache.
func (s *Store) Weights(ctx context.Context, childID string) ([]events.Weight, error) {
	if s.cache != nil {
		if v, ok := s.cache.get(events.CategoryWeight, childID); ok {
			if recs, ok := v.([]events.Weight); ok {
				return recs, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, date_time_ms, pounds, ounces FROM weight WHERE child_id = ?`, childID)
	if err != nil {
		return nil, fmt.Errorf("query weight: %w", err)
	}
	defer rows.Close()

	var out []events.Weight
	for rows.Next() {
		rec := events.Weight{ChildID: childID}
		var ms int64
		if err := rows.Scan(&rec.DocID, &ms, &rec.Pounds, &rec.Ounces); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		rec.DateTime = timeFromMillis(ms)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(events.CategoryWeight, childID, out)
	}
	return out, nil
}

// WeightPatch is a partial weight update; nil fields are left unchanged.
type WeightPatch struct {
	DateTime *time.Time
	Pounds   *int
	Ounces   *int
}

// UpdateWeight applies a partial update to one weight record.
func (s *Store) UpdateWeight(ctx context.Context, childID, docID string, p WeightPatch) error {
	var set []string
	var args []any
	if p.DateTime != nil {
		set = append(set, "date_time_ms = ?")
		args = append(args, timeToMillis(*p.DateTime))
	}
	if p.Pounds != nil {
		set = append(set, "pounds = ?")
		args = append(args, *p.Pounds)
	}
	if p.Ounces != nil {
		set = append(set, "ounces = ?")
		args = append(args, *p.Ounces)
	}
	if len(set) == 0 {
		return nil
	}
	query, args := buildUpdate("weight", set, args, childID, docID)
	return s.exec(ctx, childID, query, args...)
}

// DeleteWeight removes one weight record.
func (s *Store) DeleteWeight(ctx context.Context, childID, docID string) error {
	return s.exec(ctx, childID, `DELETE FROM weight WHERE child_id = ? AND doc_id = ?`, childID, docID)
}
