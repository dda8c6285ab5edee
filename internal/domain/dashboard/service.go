// Package dashboard exposes the classification and aggregation pipeline over
// HTTP: dataset uploads, filter vocabulary, programme summaries, and the
// viral-load suppression views.
package dashboard

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ovc/insights/internal/domain/registry"
	"github.com/ovc/insights/internal/domain/viralload"
	"github.com/ovc/insights/internal/platform/apperr"
	"github.com/ovc/insights/internal/platform/store"
	"github.com/ovc/insights/internal/platform/tabular"
)

type Service struct {
	store          *store.Store
	windowStart    time.Time
	trendFloorYear int
	log            zerolog.Logger
}

func NewService(st *store.Store, windowStart time.Time, trendFloorYear int, log zerolog.Logger) *Service {
	return &Service{
		store:          st,
		windowStart:    windowStart,
		trendFloorYear: trendFloorYear,
		log:            log,
	}
}

// UploadReceipt reports what an accepted upload published.
type UploadReceipt struct {
	SnapshotID uuid.UUID `json:"snapshot_id"`
	Dataset    string    `json:"dataset"`
	Rows       int       `json:"rows"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// decodeTable picks the codec by file extension. A FORMAT error from either
// codec aborts the load; nothing is published.
func decodeTable(filename string, r io.Reader) (*tabular.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return tabular.DecodeXLSX(r)
	case ".csv":
		return tabular.DecodeCSV(r)
	default:
		return nil, apperr.New(apperr.KindFormat, "unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
	}
}

// LoadRegistration parses and publishes a registration dataset, replacing any
// previously published one wholesale.
func (s *Service) LoadRegistration(filename string, r io.Reader) (*UploadReceipt, error) {
	table, err := decodeTable(filename, r)
	if err != nil {
		return nil, err
	}
	records, err := registry.ParseTable(table)
	if err != nil {
		return nil, err
	}

	snap := s.store.SetRegistration(records)
	s.log.Info().
		Str("dataset", "registration").
		Str("snapshot_id", snap.ID.String()).
		Int("rows", len(records)).
		Msg("dataset published")

	return &UploadReceipt{
		SnapshotID: snap.ID,
		Dataset:    "registration",
		Rows:       len(records),
		UploadedAt: snap.UploadedAt,
	}, nil
}

// LoadViralLoad parses and publishes a lab viral-load dataset.
func (s *Service) LoadViralLoad(filename string, r io.Reader) (*UploadReceipt, error) {
	table, err := decodeTable(filename, r)
	if err != nil {
		return nil, err
	}
	obs, err := viralload.ParseTable(table)
	if err != nil {
		return nil, err
	}

	snap := s.store.SetViralLoad(obs)
	s.log.Info().
		Str("dataset", "viral_load").
		Str("snapshot_id", snap.ID.String()).
		Int("rows", len(obs)).
		Msg("dataset published")

	return &UploadReceipt{
		SnapshotID: snap.ID,
		Dataset:    "viral_load",
		Rows:       len(obs),
		UploadedAt: snap.UploadedAt,
	}, nil
}

// Filters returns the filter vocabulary of the published registration
// dataset.
func (s *Service) Filters() (*registry.FilterOptions, error) {
	snap := s.store.Current()
	if !snap.HasRegistration {
		return nil, apperr.New(apperr.KindPrerequisiteMissing, "no registration dataset uploaded yet")
	}
	return registry.Options(snap.Registration), nil
}

// Summaries runs the full aggregation pass over the published registration
// dataset, restricted by the given filter.
func (s *Service) Summaries(f registry.Filter) (*registry.Summary, error) {
	snap := s.store.Current()
	if !snap.HasRegistration {
		return nil, apperr.New(apperr.KindPrerequisiteMissing, "no registration dataset uploaded yet")
	}
	return registry.Summarize(f.Apply(snap.Registration), s.windowStart), nil
}

// observations needs both datasets: the embedded results ride on the
// registration table, the rest come from the lab upload.
func (s *Service) observations() ([]viralload.Observation, error) {
	snap := s.store.Current()
	if !snap.HasRegistration {
		return nil, apperr.New(apperr.KindPrerequisiteMissing, "no registration dataset uploaded yet")
	}
	if !snap.HasViralLoad {
		return nil, apperr.New(apperr.KindPrerequisiteMissing, "no viral-load dataset uploaded yet")
	}
	return viralload.Merge(viralload.FromRegistry(snap.Registration), snap.ViralLoad), nil
}

// SuppressionSummary returns current suppression-band counts, one per
// subject, over both observation sources.
func (s *Service) SuppressionSummary() (map[string]int, error) {
	obs, err := s.observations()
	if err != nil {
		return nil, err
	}
	return viralload.BandCounts(obs), nil
}

// SuppressionTrend returns the yearly unsuppressed-subject counts.
func (s *Service) SuppressionTrend() ([]viralload.YearCount, error) {
	obs, err := s.observations()
	if err != nil {
		return nil, err
	}
	return viralload.Trend(obs, s.trendFloorYear), nil
}
