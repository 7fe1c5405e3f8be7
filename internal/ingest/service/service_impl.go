package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	bridgedomain "github.com/opsfoundry/tickethouse/internal/bridge/domain"
	"github.com/opsfoundry/tickethouse/internal/config"
	datedomain "github.com/opsfoundry/tickethouse/internal/datedim/domain"
	dimensiondomain "github.com/opsfoundry/tickethouse/internal/dimension/domain"
	factdomain "github.com/opsfoundry/tickethouse/internal/fact/domain"
	ingestdomain "github.com/opsfoundry/tickethouse/internal/ingest/domain"
	sourcedomain "github.com/opsfoundry/tickethouse/internal/source/domain"
	"github.com/opsfoundry/tickethouse/internal/source/reader"
	"github.com/opsfoundry/tickethouse/pkg/db"
	"github.com/opsfoundry/tickethouse/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Cfg     config.Config
	Sources config.Sources
	Dims    dimensiondomain.Factory
	Dates   datedomain.Factory
	Facts   factdomain.Factory
	Bridges bridgedomain.Factory
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     config.Config
	sources config.Sources

	dims    dimensiondomain.Factory
	dates   datedomain.Factory
	facts   factdomain.Factory
	bridges bridgedomain.Factory
}

func NewService(p ServiceParam) ingestdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("ingest.service"),
		cfg:     p.Cfg,
		sources: p.Sources,
		dims:    p.Dims,
		dates:   p.Dates,
		facts:   p.Facts,
		bridges: p.Bridges,
	}
}

// Run extracts all available exports and applies them in one
// transaction. Extraction happens before the transaction opens;
// any load failure rolls the whole batch back.
func (s *Service) Run(ctx context.Context, opts ingestdomain.RunOptions) (*ingestdomain.Report, error) {
	report := &ingestdomain.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := s.log.With(zap.String("run_id", report.RunID))

	interactionsPath, err := s.resolvePath(opts.InteractionsPath, s.sources.InteractionsPattern, log)
	if err != nil {
		return nil, err
	}
	linksPath, err := s.resolvePath(opts.LinksPath, s.sources.LinksPattern, log)
	if err != nil {
		return nil, err
	}
	sysidPath, err := s.resolvePath(opts.SysIDPath, s.sources.SysIDPattern, log)
	if err != nil {
		return nil, err
	}

	var interactions []sourcedomain.Record
	if interactionsPath != "" {
		interactions, report.SkippedInteractions, err = reader.NewCSV(interactionsPath, log).Read(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("extracted interactions",
			zap.String("file", interactionsPath),
			zap.Int("records", len(interactions)),
		)
	}

	sysidLookup := map[string]sourcedomain.Record{}
	if sysidPath != "" {
		sysids, skipped, err := reader.NewJSON(sysidPath, log).Read(ctx)
		if err != nil {
			return nil, err
		}
		report.SkippedSysIDs = skipped
		for _, rec := range sysids {
			sysidLookup[provenanceKey(rec.Get("sys_created_by"), rec.Get("sys_created_on"))] = rec
		}
		log.Info("built sysid lookup",
			zap.String("file", sysidPath),
			zap.Int("records", len(sysidLookup)),
		)
	}

	var links []sourcedomain.Record
	if linksPath != "" {
		var skipped int
		links, skipped, err = reader.NewCSV(linksPath, log).Read(ctx)
		if err != nil {
			return nil, err
		}
		report.SkippedLinks = skipped
		log.Info("extracted links",
			zap.String("file", linksPath),
			zap.Int("records", len(links)),
		)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		resolver := s.dims.ForTrx(tx)
		dates := s.dates.ForTrx(tx)
		facts := s.facts.ForTrx(tx)
		bridges := s.bridges.ForTrx(tx)

		for _, rec := range interactions {
			if err := s.loadInteraction(ctx, rec, resolver, dates, facts, report); err != nil {
				return err
			}
		}
		for _, rec := range links {
			if err := s.loadLink(ctx, rec, sysidLookup, bridges, report); err != nil {
				return err
			}
		}

		counts := resolver.Counts()
		report.UsersCreated = counts.Users
		report.TechniciansCreated = counts.Technicians
		report.LocationsCreated = counts.Locations
		report.StatesCreated = counts.States
		report.DatesCreated = dates.Created()
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			err = fmt.Errorf("%w: %v", ingestdomain.ErrDuplicateRecord, err)
		}
		log.Error("run failed, batch rolled back", zap.Error(err))
		return nil, err
	}

	report.Duration = time.Since(report.StartedAt)
	log.Info("run complete",
		zap.Int("interactions_created", report.InteractionsCreated),
		zap.Int("interactions_updated", report.InteractionsUpdated),
		zap.Int("links_created", report.LinksCreated),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (s *Service) loadInteraction(
	ctx context.Context,
	rec sourcedomain.Record,
	resolver dimensiondomain.Resolver,
	dates datedomain.Generator,
	facts factdomain.Builder,
	report *ingestdomain.Report,
) error {
	number := rec.Get("number")
	if number == "" {
		report.SkippedInteractions++
		return nil
	}

	userID, userName := parseActor(rec.Get("opened_for"))
	techID, techName := parseActor(rec.Get("assigned_to"))
	openedAt := parseTimestamp(rec.Get("opened_at"))
	updatedAt := parseTimestamp(rec.Get("sys_updated_on"))

	userKey, err := resolver.ResolveUser(ctx, userID, userName)
	if err != nil {
		return fmt.Errorf("interaction %s: %w", number, err)
	}
	techKey, err := resolver.ResolveTechnician(ctx, techID, techName)
	if err != nil {
		return fmt.Errorf("interaction %s: %w", number, err)
	}
	locationID, err := resolver.ResolveLocation(ctx, rec.Get("location"))
	if err != nil {
		return fmt.Errorf("interaction %s: %w", number, err)
	}
	stateID, err := resolver.ResolveState(ctx, rec.Get("state"))
	if err != nil {
		return fmt.Errorf("interaction %s: %w", number, err)
	}

	var openedDateID *int64
	if openedAt != nil {
		key, err := dates.Ensure(ctx, *openedAt)
		if err != nil {
			return fmt.Errorf("interaction %s: %w", number, err)
		}
		openedDateID = &key
	}

	created, err := facts.Upsert(ctx, &factdomain.Interaction{
		InteractionNumber: number,
		ShortDescription:  rec.Get("short_description"),
		InteractionType:   rec.Get("type"),
		WorkNotes:         rec.Get("work_notes"),
		UserID:            userKey,
		TechID:            techKey,
		LocationID:        locationID,
		StateID:           stateID,
		OpenedDateID:      openedDateID,
		OpenedAt:          openedAt,
		UpdatedAt:         updatedAt,
	})
	if err != nil {
		return fmt.Errorf("interaction %s: %w", number, err)
	}
	if created {
		report.InteractionsCreated++
	} else {
		report.InteractionsUpdated++
	}
	return nil
}

func (s *Service) loadLink(
	ctx context.Context,
	rec sourcedomain.Record,
	sysidLookup map[string]sourcedomain.Record,
	bridges bridgedomain.Builder,
	report *ingestdomain.Report,
) error {
	interaction := rec.Get("interaction")
	if interaction == "" {
		report.SkippedLinks++
		return nil
	}

	createdBy := rec.Get("sys_created_by")
	createdOn := rec.Get("sys_created_on")

	var interactionSysID, incidentSysID string
	if sysRec, ok := sysidLookup[provenanceKey(createdBy, createdOn)]; ok {
		interactionSysID = sysRec.Get("interaction")
		incidentSysID = sysRec.Get("task")
	}

	created, err := bridges.Link(ctx, &bridgedomain.Link{
		InteractionNumber: interaction,
		IncidentNumber:    rec.Get("task"),
		InteractionSysID:  interactionSysID,
		IncidentSysID:     incidentSysID,
		CreatedBy:         createdBy,
		CreatedOn:         createdOn,
		InteractionURL:    navigationURL(s.sources.BaseURL, "interaction.do", interactionSysID),
		IncidentURL:       navigationURL(s.sources.BaseURL, "incident.do", incidentSysID),
	})
	if err != nil {
		return fmt.Errorf("link %s/%s: %w", interaction, rec.Get("task"), err)
	}
	if created {
		report.LinksCreated++
	} else {
		report.LinksUpdated++
	}
	return nil
}

// resolvePath returns the source file to use. Explicit paths must
// exist; discovered paths are optional and "" means skip the source.
func (s *Service) resolvePath(explicit, pattern string, log *zap.Logger) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ingestdomain.ErrMandatorySource, explicit, err)
		}
		return explicit, nil
	}
	path, err := reader.FindLatest(s.cfg.ExportsDir, pattern)
	if err != nil {
		return "", err
	}
	if path == "" {
		log.Warn("no export found, skipping source", zap.String("pattern", pattern))
	}
	return path, nil
}

func provenanceKey(createdBy, createdOn string) string {
	return createdBy + "\x00" + createdOn
}

func navigationURL(base, page, sysID string) string {
	if sysID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?sys_id=%s", base, page, sysID)
}

func (s *Service) Stats(ctx context.Context) (*ingestdomain.Stats, error) {
	stats := &ingestdomain.Stats{}
	var err error

	if stats.Users, err = tableCount[dimensiondomain.User](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.Technicians, err = tableCount[dimensiondomain.Technician](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.Locations, err = tableCount[dimensiondomain.Location](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.States, err = tableCount[dimensiondomain.State](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.Dates, err = tableCount[datedomain.Date](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.Interactions, err = tableCount[factdomain.Interaction](ctx, s.db); err != nil {
		return nil, err
	}
	if stats.Links, err = tableCount[bridgedomain.Link](ctx, s.db); err != nil {
		return nil, err
	}
	return stats, nil
}

// tableCount treats a missing table as zero rows so row counts can be
// read from a store the pipeline has never migrated.
func tableCount[T any](ctx context.Context, conn *gorm.DB) (int64, error) {
	var model T
	if !conn.Migrator().HasTable(&model) {
		return 0, nil
	}
	return repository.ProvideStore[T](conn).Count(ctx, &model)
}
