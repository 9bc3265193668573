package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/parsers/label"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// LabelResult is the outcome of loading one of the four label copies.
type LabelResult struct {
	Index int
	Label interfaces.VdevLabelReader
	Err   error
}

// InspectionReport is the aggregated outcome of inspecting one device.
type InspectionReport struct {
	ID     string
	Device string
	Labels []LabelResult
}

// PoolLabelService loads the four fixed-position vdev label copies from a
// device. Labels are decoded independently; one bad copy never prevents the
// others from loading, and no cross-label reconciliation is attempted.
type PoolLabelService struct {
	ashift uint
	log    *zap.SugaredLogger
}

// NewPoolLabelService creates a label service for devices with the given
// top-level vdev ashift. A nil logger disables logging.
func NewPoolLabelService(ashift uint, log *zap.SugaredLogger) *PoolLabelService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PoolLabelService{
		ashift: ashift,
		log:    log,
	}
}

// labelPositions returns the seek target for each label copy: two
// consecutive labels at the start of the device and two more ending exactly
// 512 KiB before its end.
func labelPositions() [types.VdevLabelCount]struct {
	offset int64
	whence int
} {
	return [types.VdevLabelCount]struct {
		offset int64
		whence int
	}{
		{0, io.SeekStart},
		{types.VdevLabelSize, io.SeekStart},
		{-2 * types.VdevLabelSize, io.SeekEnd},
		{-types.VdevLabelSize, io.SeekEnd},
	}
}

// LoadLabels reads and decodes all four label copies in positional order.
func (s *PoolLabelService) LoadLabels(dev interfaces.DeviceReader) []LabelResult {
	results := make([]LabelResult, 0, types.VdevLabelCount)

	for index, pos := range labelPositions() {
		result := LabelResult{Index: index}

		if _, err := dev.Seek(pos.offset, pos.whence); err != nil {
			result.Err = fmt.Errorf("label %d: %w", index, err)
			s.log.Warnw("failed to seek to label", "device", dev.Path(), "label", index, "error", err)
			results = append(results, result)
			continue
		}

		raw, err := dev.Read(types.VdevLabelSize)
		if err != nil {
			result.Err = fmt.Errorf("label %d: %w", index, err)
			s.log.Warnw("failed to read label", "device", dev.Path(), "label", index, "error", err)
			results = append(results, result)
			continue
		}

		reader, err := label.NewVdevLabelReader(raw, s.ashift)
		if err != nil {
			result.Err = fmt.Errorf("label %d: %w", index, err)
			s.log.Warnw("failed to decode label", "device", dev.Path(), "label", index, "error", err)
			results = append(results, result)
			continue
		}

		result.Label = reader
		if active := reader.ActiveUberblock(); active != nil {
			s.log.Debugw("decoded label",
				"device", dev.Path(),
				"label", index,
				"txg", active.Txg,
				"timestamp", active.Timestamp,
				"ring_index", active.RingIndex)
		} else {
			s.log.Debugw("decoded label without active uberblock", "device", dev.Path(), "label", index)
		}
		results = append(results, result)
	}

	return results
}

// Inspect loads all labels and wraps them in a report with a fresh
// inspection id.
func (s *PoolLabelService) Inspect(dev interfaces.DeviceReader) *InspectionReport {
	report := &InspectionReport{
		ID:     uuid.NewString(),
		Device: dev.Path(),
		Labels: s.LoadLabels(dev),
	}
	s.log.Infow("inspected device", "id", report.ID, "device", report.Device, "labels", len(report.Labels))
	return report
}

// ActiveLabels returns the results whose label decoded with an active
// uberblock.
func (r *InspectionReport) ActiveLabels() []LabelResult {
	active := make([]LabelResult, 0, len(r.Labels))
	for _, result := range r.Labels {
		if result.Err == nil && result.Label.ActiveUberblock() != nil {
			active = append(active, result)
		}
	}
	return active
}
