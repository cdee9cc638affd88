// Package attachment keeps records and the media they own consistent across
// create, replace, clear and delete, for single image fields and for nested
// collections of image-bearing children.
//
// Record mutations are authoritative. Media deletions are best effort: a failed
// deletion never aborts the surrounding operation, it is reported back in a
// Report and published for later reconciliation.
package attachment

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	gDto "voyage/shared/dto"
)

var (
	ErrEmptyUpload = errors.New("upload has no content")
)

// Upload is one incoming binary, typically a multipart part.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (u *Upload) Empty() bool {
	return u == nil || u.Body == nil
}

func (u Upload) MimeType() string {
	contentType, _, _ := strings.Cut(u.ContentType, ";")

	return strings.ToLower(strings.TrimSpace(contentType))
}

func (u Upload) ByteSize() int64 {
	return u.Size
}

// Records writes a reference column on the rows matched by a filter. The
// generic repositories satisfy it.
type Records interface {
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

// Slot addresses one image field of one record.
type Slot struct {
	Records   Records
	Filter    gDto.FilterGroup
	Column    string
	Directory string
	// Current is the reference the record holds right now.
	Current string
	// With is written in the same update as the reference.
	With map[string]any
}

func (s Slot) values(ref string) map[string]any {
	values := make(map[string]any, len(s.With)+1)
	for key, value := range s.With {
		values[key] = value
	}

	values[s.Column] = ref

	return values
}

// Member is one child of a collection together with the reference it owns.
type Member struct {
	ID       string
	Ref      string
	Position int
}

// Collection is an ordered relation of image-bearing children under a parent.
type Collection interface {
	Directory() string
	Members(ctx context.Context, parentID string) ([]Member, error)
	Add(ctx context.Context, parentID string, position int, ref string) error
	Remove(ctx context.Context, memberID string) error
}

// Node is one record in an ownership tree.
type Node interface {
	String() string
	// Refs lists the media the record owns directly.
	Refs() []string
	Children(ctx context.Context) ([]Node, error)
	// Remove deletes the record only; its media is released by the manager.
	Remove(ctx context.Context) error
}

// Report lists the references whose deletion failed. They are no longer
// referenced by any record.
type Report struct {
	Orphaned []string
}

func (r *Report) Merge(other Report) {
	r.Orphaned = append(r.Orphaned, other.Orphaned...)
}

func (r Report) Empty() bool {
	return len(r.Orphaned) == 0
}

func (r Report) Contains(ref string) bool {
	return slices.Contains(r.Orphaned, ref)
}

type Manager interface {
	// Put stores an upload under directory without touching any record.
	Put(ctx context.Context, directory string, upload *Upload) (string, error)
	// Release deletes refs from the media store, best effort.
	Release(ctx context.Context, refs ...string) Report
	// Create stores upload (if any) and runs insert with the new reference. A
	// failed insert releases the stored object.
	Create(ctx context.Context, directory string, upload *Upload, insert func(ref string) error) (string, error)
	Attach(ctx context.Context, slot Slot, upload *Upload) (string, error)
	Replace(ctx context.Context, slot Slot, upload *Upload) (string, Report, error)
	Clear(ctx context.Context, slot Slot) (Report, error)
	Append(ctx context.Context, coll Collection, parentID string, uploads []*Upload) (Report, error)
	ReplaceCollection(ctx context.Context, coll Collection, parentID string, uploads []*Upload) (Report, error)
	CascadeDelete(ctx context.Context, node Node) (Report, error)
}
