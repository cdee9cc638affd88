package attachment

import (
	"context"
	"fmt"
	"path"
	"time"

	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/infras/otel"
	"voyage/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	otelAttrDirectory = "attachment.directory"
	otelAttrColumn    = "attachment.column"
	otelAttrNode      = "attachment.node"
	otelAttrOrphaned  = "attachment.orphaned"
)

type manager struct {
	store   media.Store
	sink    OrphanSink
	metrics metrics.Metrics
	otel    otel.Otel
}

func New(store media.Store, sink OrphanSink, mtr metrics.Metrics, otl otel.Otel) Manager {
	return &manager{
		store:   store,
		sink:    sink,
		metrics: mtr,
		otel:    otl,
	}
}

func (m *manager) Put(ctx context.Context, directory string, upload *Upload) (ref string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrDirectory, directory)

	if upload.Empty() {
		return constant.Empty, ErrEmptyUpload
	}

	start := time.Now()
	ref, err = m.store.Put(ctx, upload.Body, path.Join(directory, path.Base(upload.Name)), upload.ContentType, upload.Size)
	m.metrics.RecordMedia(metrics.OperationPut, time.Since(start), err)

	if err != nil {
		log.Error().Err(err).Str("directory", directory).Str("name", upload.Name).Msg("failed to store media")

		return constant.Empty, fmt.Errorf("failed to store media: %w", err)
	}

	return ref, nil
}

func (m *manager) Release(ctx context.Context, refs ...string) (report Report) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Release")
	defer scope.End()

	for _, ref := range refs {
		if ref == constant.Empty {
			continue
		}

		start := time.Now()
		ok := m.store.Delete(ctx, ref)

		var err error
		if !ok {
			err = fmt.Errorf("media store refused to delete %s", ref)
		}

		m.metrics.RecordMedia(metrics.OperationDelete, time.Since(start), err)

		if ok {
			continue
		}

		log.Warn().Str("ref", ref).Msg("media left orphaned")
		m.metrics.RecordOrphaned(path.Dir(ref), 1)

		report.Orphaned = append(report.Orphaned, ref)
	}

	if report.Empty() {
		return report
	}

	scope.SetAttribute(otelAttrOrphaned, len(report.Orphaned))

	if err := m.sink.Publish(context.WithoutCancel(ctx), report.Orphaned...); err != nil {
		log.Error().Err(err).Strs("refs", report.Orphaned).Msg("failed to publish orphaned media")
	}

	return report
}

func (m *manager) Create(ctx context.Context, directory string, upload *Upload, insert func(ref string) error) (ref string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !upload.Empty() {
		ref, err = m.Put(ctx, directory, upload)
		if err != nil {
			return constant.Empty, err
		}
	}

	if err = insert(ref); err != nil {
		m.Release(ctx, ref)

		return constant.Empty, err
	}

	return ref, nil
}

func (m *manager) Attach(ctx context.Context, slot Slot, upload *Upload) (ref string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Attach")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrColumn, slot.Column)

	ref, err = m.Put(ctx, slot.Directory, upload)
	if err != nil {
		return constant.Empty, err
	}

	if err = slot.Records.Update(ctx, slot.values(ref), slot.Filter); err != nil {
		log.Error().Err(err).Str("column", slot.Column).Msg("failed to write media reference")
		m.Release(ctx, ref)

		return constant.Empty, fmt.Errorf("failed to write %s: %w", slot.Column, err)
	}

	return ref, nil
}

// Replace points the slot at a new object and then releases the previous one,
// so the record never holds a reference to a deleted object.
func (m *manager) Replace(ctx context.Context, slot Slot, upload *Upload) (ref string, report Report, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Replace")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ref, err = m.Attach(ctx, slot, upload)
	if err != nil {
		return constant.Empty, report, err
	}

	if slot.Current != constant.Empty && slot.Current != ref {
		report = m.Release(ctx, slot.Current)
	}

	return ref, report, nil
}

func (m *manager) Clear(ctx context.Context, slot Slot) (report Report, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrColumn, slot.Column)

	if slot.Current == constant.Empty {
		return report, nil
	}

	if err = slot.Records.Update(ctx, slot.values(constant.Empty), slot.Filter); err != nil {
		log.Error().Err(err).Str("column", slot.Column).Msg("failed to clear media reference")

		return report, fmt.Errorf("failed to clear %s: %w", slot.Column, err)
	}

	return m.Release(ctx, slot.Current), nil
}

func (m *manager) Append(ctx context.Context, coll Collection, parentID string, uploads []*Upload) (report Report, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".Append")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	members, err := coll.Members(ctx, parentID)
	if err != nil {
		return report, fmt.Errorf("failed to load %s members: %w", coll.Directory(), err)
	}

	next := 0
	for _, member := range members {
		next = max(next, member.Position+1)
	}

	refs, err := m.putAll(ctx, coll.Directory(), uploads)
	if err != nil {
		return report, err
	}

	return m.addAll(ctx, coll, parentID, next, refs)
}

// ReplaceCollection stores every upload first, so a storage failure leaves the
// current members untouched. Members are then removed (record, then media)
// and the new ones added in input order.
func (m *manager) ReplaceCollection(ctx context.Context, coll Collection, parentID string, uploads []*Upload) (report Report, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".ReplaceCollection")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrDirectory, coll.Directory())

	members, err := coll.Members(ctx, parentID)
	if err != nil {
		return report, fmt.Errorf("failed to load %s members: %w", coll.Directory(), err)
	}

	refs, err := m.putAll(ctx, coll.Directory(), uploads)
	if err != nil {
		return report, err
	}

	for _, member := range members {
		if err = coll.Remove(ctx, member.ID); err != nil {
			log.Error().Err(err).Str("member", member.ID).Msg("failed to remove collection member")
			report.Merge(m.Release(ctx, refs...))

			return report, fmt.Errorf("failed to remove %s member %s: %w", coll.Directory(), member.ID, err)
		}

		report.Merge(m.Release(ctx, member.Ref))
	}

	added, err := m.addAll(ctx, coll, parentID, 0, refs)
	report.Merge(added)

	return report, err
}

func (m *manager) putAll(ctx context.Context, directory string, uploads []*Upload) ([]string, error) {
	refs := make([]string, 0, len(uploads))

	for _, upload := range uploads {
		ref, err := m.Put(ctx, directory, upload)
		if err != nil {
			m.Release(ctx, refs...)

			return nil, err
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

func (m *manager) addAll(ctx context.Context, coll Collection, parentID string, start int, refs []string) (report Report, err error) {
	for idx, ref := range refs {
		if err = coll.Add(ctx, parentID, start+idx, ref); err != nil {
			log.Error().Err(err).Str("parent", parentID).Msg("failed to add collection member")
			report.Merge(m.Release(ctx, refs[idx:]...))

			return report, fmt.Errorf("failed to add %s member: %w", coll.Directory(), err)
		}
	}

	return report, nil
}

// CascadeDelete tears the tree down depth first. Every descendant is gone,
// records and media, before a node's own record is removed; a node's media is
// released only after its record. A record that cannot be removed stops the
// walk, so its ancestors and their media stay reachable.
func (m *manager) CascadeDelete(ctx context.Context, node Node) (report Report, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelAttachmentScopeName, constant.OtelAttachmentScopeName+".CascadeDelete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrNode, node.String())

	err = m.cascade(ctx, node, &report)

	return report, err
}

func (m *manager) cascade(ctx context.Context, node Node, report *Report) error {
	children, err := node.Children(ctx)
	if err != nil {
		return fmt.Errorf("failed to load children of %s: %w", node, err)
	}

	for _, child := range children {
		if err = m.cascade(ctx, child, report); err != nil {
			return err
		}
	}

	if err = node.Remove(ctx); err != nil {
		log.Error().Err(err).Str("node", node.String()).Msg("failed to remove record")

		return fmt.Errorf("failed to remove %s: %w", node, err)
	}

	report.Merge(m.Release(ctx, node.Refs()...))

	return nil
}
