package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/ingest"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/metrics"
)

// IngestionService defines the interface for bulk create-or-skip loading of the catalog
type IngestionService interface {
	Ingest(ctx context.Context, batch *ingest.Batch) (*dto.IngestResponse, error)
}

// ingestionServiceImpl implements IngestionService
type ingestionServiceImpl struct {
	universities UniversityStore
	courses      CourseStore
	subjects     SubjectStore
	snapshot     *catalogSnapshot
	maxBatchSize int
	logger       zerolog.Logger
}

// NewIngestionService creates a new IngestionService. A maxBatchSize below 1 disables the limit.
func NewIngestionService(
	universities UniversityStore,
	courses CourseStore,
	subjects SubjectStore,
	cache CatalogCache,
	maxBatchSize int,
	logger zerolog.Logger,
) IngestionService {
	return &ingestionServiceImpl{
		universities: universities,
		courses:      courses,
		subjects:     subjects,
		snapshot:     &catalogSnapshot{courses: courses, cache: cache, logger: logger},
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// Ingest stores every record of the batch that is not already present. One record
// failing never stops the rest of the batch.
func (s *ingestionServiceImpl) Ingest(ctx context.Context, batch *ingest.Batch) (*dto.IngestResponse, error) {
	if s.maxBatchSize > 0 && batch.Len() > s.maxBatchSize {
		return nil, apperrors.NewCustomError(apperrors.ErrBatchTooLarge,
			fmt.Sprintf("batch has %d records, the limit is %d", batch.Len(), s.maxBatchSize)).
			WithDetails(map[string]interface{}{"records": batch.Len(), "limit": s.maxBatchSize})
	}

	resp := &dto.IngestResponse{Data: []dto.IngestOutcome{}}
	entity := string(batch.Kind)
	record := func(o dto.IngestOutcome) {
		resp.Add(o)
		metrics.IngestedRecords.WithLabelValues(entity, string(o.Status)).Inc()
	}

	for _, r := range batch.Rejected {
		record(dto.IngestOutcome{
			Input:   r.Input,
			Status:  dto.IngestSkipped,
			Message: fmt.Sprintf("Record %d is invalid", r.Index),
			Error:   r.Reason,
		})
	}

	w := newCatalogWriter(s.universities, s.courses, s.subjects)
	for _, rec := range batch.Universities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record(s.ingestUniversity(ctx, w, rec))
	}
	for _, rec := range batch.Subjects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record(s.ingestSubject(ctx, w, rec))
	}
	for _, rec := range batch.Courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record(s.ingestCourse(ctx, w, rec))
	}

	if resp.Summary.Created > 0 {
		s.snapshot.Invalidate(ctx)
	}

	s.logger.Info().
		Str("kind", entity).
		Int("created", resp.Summary.Created).
		Int("exists", resp.Summary.Exists).
		Int("skipped", resp.Summary.Skipped).
		Int("failed", resp.Summary.Failed).
		Msg("Ingestion batch processed")

	return resp, nil
}

func (s *ingestionServiceImpl) ingestUniversity(ctx context.Context, w *catalogWriter, rec dto.UniversityRecord) dto.IngestOutcome {
	u, created, err := w.ensureUniversity(ctx, &models.University{
		Name:        rec.Name,
		Status:      models.ParseUniversityStatus(rec.Type),
		District:    optionalString(rec.District),
		Description: optionalString(rec.Description),
		Website:     optionalString(rec.Website),
		Logo:        optionalString(rec.Logo),
	})
	if err != nil {
		return failedOutcome(rec, "University could not be stored", err)
	}
	if !created {
		return dto.IngestOutcome{Input: rec, Status: dto.IngestExists, Message: "University already exists", Data: u}
	}
	return dto.IngestOutcome{Input: rec, Status: dto.IngestCreated, Message: "University created", Data: u}
}

func (s *ingestionServiceImpl) ingestSubject(ctx context.Context, w *catalogWriter, rec dto.SubjectRecord) dto.IngestOutcome {
	subject, created, err := w.ensureSubject(ctx, &models.Subject{
		Name:        rec.Name,
		Category:    optionalString(rec.Category),
		Description: optionalString(rec.Description),
	})
	if err != nil {
		return failedOutcome(rec, "Subject could not be stored", err)
	}
	if !created {
		return dto.IngestOutcome{Input: rec, Status: dto.IngestExists, Message: "Subject already exists", Data: subject}
	}
	return dto.IngestOutcome{Input: rec, Status: dto.IngestCreated, Message: "Subject created", Data: subject}
}

func (s *ingestionServiceImpl) ingestCourse(ctx context.Context, w *catalogWriter, rec dto.CourseRecord) dto.IngestOutcome {
	university, err := w.findUniversity(ctx, rec.University)
	if err != nil {
		return failedOutcome(rec, "Universities could not be loaded", err)
	}
	if university == nil {
		return dto.IngestOutcome{
			Input:   rec,
			Status:  dto.IngestSkipped,
			Message: fmt.Sprintf("University %q not found", rec.University),
		}
	}

	course, reason := courseFromRecord(rec)
	if reason != "" {
		return dto.IngestOutcome{Input: rec, Status: dto.IngestSkipped, Message: "Course record is invalid", Error: reason}
	}
	course.UniversityID = university.ID

	existing, err := w.findCourse(ctx, university.ID, course.Name)
	if err != nil {
		return failedOutcome(rec, "Courses could not be loaded", err)
	}
	if existing != nil {
		return dto.IngestOutcome{Input: rec, Status: dto.IngestExists, Message: "Course already exists", Data: existing}
	}

	names := make([]string, len(rec.RequiredSubjects))
	categories := make([]string, len(rec.RequiredSubjects))
	for i, rs := range rec.RequiredSubjects {
		names[i], categories[i] = rs.Name, rs.Category
	}
	if course.RequiredSubjects, err = w.requiredSubjects(ctx, names, categories); err != nil {
		return failedOutcome(rec, "Required subjects could not be stored", err)
	}

	stored, created, err := w.ensureCourse(ctx, course)
	if err != nil {
		return failedOutcome(rec, "Course could not be stored", err)
	}
	if !created {
		return dto.IngestOutcome{Input: rec, Status: dto.IngestExists, Message: "Course already exists", Data: stored}
	}
	return dto.IngestOutcome{Input: rec, Status: dto.IngestCreated, Message: "Course created", Data: stored}
}

// courseFromRecord builds a course from a record, explaining why when it cannot. The level
// comes from the record, then from a type naming a level, then from the duration.
func courseFromRecord(rec dto.CourseRecord) (*models.Course, string) {
	course := &models.Course{
		Name:              rec.Name,
		Code:              optionalString(rec.Code),
		Duration:          optionalInt(rec.Duration),
		EntryPoints:       optionalInt(rec.EntryPoints),
		Description:       optionalString(rec.Description),
		OtherRequirements: rec.OtherRequirements,
	}

	if rec.Level != "" {
		level, ok := models.ParseCourseLevel(rec.Level)
		if !ok {
			return nil, fmt.Sprintf("unknown course level %q", rec.Level)
		}
		course.Level = level
	} else if level, ok := models.ParseCourseLevel(rec.Type); ok {
		course.Level = level
	} else {
		course.Level = models.LevelForDuration(rec.Duration)
	}

	status, ok := models.ParseCourseStatus(rec.Status)
	if !ok {
		return nil, fmt.Sprintf("unknown course status %q", rec.Status)
	}
	course.Status = status
	return course, ""
}

func failedOutcome(input interface{}, message string, err error) dto.IngestOutcome {
	return dto.IngestOutcome{Input: input, Status: dto.IngestFailed, Message: message, Error: err.Error()}
}
