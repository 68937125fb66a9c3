package reports

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/blob"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("report not found")
)

type Options struct {
	DefaultPeriodDays int
	MaxPeriodDays     int
	PresignTTL        time.Duration
}

// Service exports analytics snapshots. With a nil blob store the bytes
// are kept on the report record itself.
type Service struct {
	store     storage.ReportsStorage
	generator *Generator
	blobs     blob.Store
	opts      Options
}

func NewService(store storage.ReportsStorage, generator *Generator, blobs blob.Store, opts Options) *Service {
	if opts.DefaultPeriodDays <= 0 {
		opts.DefaultPeriodDays = 30
	}
	if opts.MaxPeriodDays <= 0 {
		opts.MaxPeriodDays = 366
	}
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 15 * time.Minute
	}
	return &Service{store: store, generator: generator, blobs: blobs, opts: opts}
}

func objectKey(ownerID owner.ID, id uuid.UUID, format string) string {
	return fmt.Sprintf("reports/%s/%s.%s", ownerID, id, format)
}

func (s *Service) Create(ctx context.Context, ownerID owner.ID, req *CreateRequest) (*ReportDTO, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF && format != FormatYAML {
		return nil, fmt.Errorf("%w: format must be one of %s", ErrInvalidRequest, strings.Join(Formats, ", "))
	}
	days := s.opts.DefaultPeriodDays
	if req.Period != nil {
		days = *req.Period
	}
	if days < 0 || days > s.opts.MaxPeriodDays {
		return nil, fmt.Errorf("%w: period must be between 0 and %d", ErrInvalidRequest, s.opts.MaxPeriodDays)
	}

	snap, err := s.generator.Collect(ctx, ownerID, days)
	if err != nil {
		return nil, fmt.Errorf("collect analytics: %w", err)
	}
	data, err := Render(format, snap)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	rep := &storage.Report{
		ID:         uuid.New(),
		Owner:      ownerID,
		Format:     format,
		PeriodDays: days,
		From:       snap.From,
		To:         snap.To,
		SizeBytes:  int64(len(data)),
		CreatedAt:  snap.GeneratedAt,
	}
	if s.blobs == nil {
		rep.Data = data
	} else {
		rep.ObjectKey = objectKey(ownerID, rep.ID, format)
		if _, err := s.blobs.Put(ctx, rep.ObjectKey, data, contentType(format)); err != nil {
			return nil, fmt.Errorf("upload report: %w", err)
		}
	}

	if err := s.store.CreateReport(ctx, rep); err != nil {
		if rep.ObjectKey != "" {
			if derr := s.blobs.Delete(ctx, rep.ObjectKey); derr != nil {
				log.Printf("WARN reports: orphaned object key=%s err=%v", rep.ObjectKey, derr)
			}
		}
		return nil, fmt.Errorf("save report: %w", err)
	}
	return s.toDTO(ctx, rep), nil
}

func (s *Service) List(ctx context.Context, ownerID owner.ID, limit, offset int) (*ListResponse, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.store.ListReports(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &ListResponse{Reports: make([]ReportDTO, 0, len(rows))}
	for i := range rows {
		resp.Reports = append(resp.Reports, *s.toDTO(ctx, &rows[i]))
	}
	return resp, nil
}

// Download returns the report bytes and their content type.
func (s *Service) Download(ctx context.Context, ownerID owner.ID, id uuid.UUID) ([]byte, string, error) {
	rep, err := s.get(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}
	if rep.ObjectKey == "" {
		return rep.Data, contentType(rep.Format), nil
	}
	if s.blobs == nil {
		return nil, "", fmt.Errorf("report %s is in object storage but none is configured", id)
	}
	data, err := s.blobs.Get(ctx, rep.ObjectKey)
	if err != nil {
		return nil, "", err
	}
	return data, contentType(rep.Format), nil
}

func (s *Service) Delete(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	rep, err := s.get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteReport(ctx, ownerID, id); err != nil {
		return mapStoreErr(err)
	}
	if rep.ObjectKey != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, rep.ObjectKey); err != nil {
			log.Printf("WARN reports: delete object key=%s err=%v", rep.ObjectKey, err)
		}
	}
	return nil
}

func (s *Service) get(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Report, error) {
	if ownerID.IsZero() {
		return nil, ErrUnauthorized
	}
	rep, err := s.store.GetReport(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return rep, nil
}

// toDTO links object-stored reports through a presigned URL and the rest
// through the API download route.
func (s *Service) toDTO(ctx context.Context, r *storage.Report) *ReportDTO {
	dto := &ReportDTO{
		ID:          r.ID,
		Format:      r.Format,
		Period:      r.PeriodDays,
		From:        r.From.UTC().Format("2006-01-02"),
		To:          r.To.UTC().Format("2006-01-02"),
		SizeBytes:   r.SizeBytes,
		DownloadURL: "/api/reports/" + r.ID.String() + "/download",
		CreatedAt:   r.CreatedAt,
	}
	if r.ObjectKey != "" && s.blobs != nil {
		url, err := s.blobs.PresignGet(ctx, r.ObjectKey, s.opts.PresignTTL)
		if err != nil {
			log.Printf("WARN reports: presign key=%s err=%v", r.ObjectKey, err)
		} else {
			dto.DownloadURL = url
		}
	}
	return dto
}

func mapStoreErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
