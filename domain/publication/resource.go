package publication

import (
	"reflect"
	"time"

	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// ResourceStatus represents the lifecycle state of a publication
type ResourceStatus string

const (
	ResourceStatusDraft            ResourceStatus = "DRAFT"
	ResourceStatusPublished        ResourceStatus = "PUBLISHED"
	ResourceStatusDraftForDeletion ResourceStatus = "DRAFT_FOR_DELETION"
)

// Resource is a publication record. Identity components (identifier,
// owner, customer) are immutable after creation; only status,
// timestamps, payload and row version change.
type Resource struct {
	identifier        SortableIdentifier
	owner             string
	customer          CustomerID
	status            ResourceStatus
	title             string
	doi               string
	cristinIdentifier string
	metadata          map[string]interface{}
	createdAt         time.Time
	modifiedAt        time.Time
	version           RowVersion
}

// NewResource creates a draft resource owned by the given user
func NewResource(owner string, customer CustomerID, title string) (*Resource, error) {
	if owner == "" {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}

	now := time.Now().UTC()
	return &Resource{
		identifier: NewSortableIdentifier(),
		owner:      owner,
		customer:   customer,
		status:     ResourceStatusDraft,
		title:      title,
		metadata:   map[string]interface{}{},
		createdAt:  now,
		modifiedAt: now,
		version:    NewRowVersion(),
	}, nil
}

// ReconstructResource rebuilds a resource from stored data
func ReconstructResource(
	identifier SortableIdentifier,
	owner string,
	customer CustomerID,
	status ResourceStatus,
	title, doi, cristinIdentifier string,
	metadata map[string]interface{},
	createdAt, modifiedAt time.Time,
	version RowVersion,
) (*Resource, error) {
	if identifier.IsZero() {
		return nil, pkgerrors.NewValidationError("identifier cannot be empty")
	}
	if owner == "" {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &Resource{
		identifier:        identifier,
		owner:             owner,
		customer:          customer,
		status:            status,
		title:             title,
		doi:               doi,
		cristinIdentifier: cristinIdentifier,
		metadata:          metadata,
		createdAt:         createdAt,
		modifiedAt:        modifiedAt,
		version:           version,
	}, nil
}

func (r *Resource) EntityType() Type               { return TypeResource }
func (r *Resource) Identifier() SortableIdentifier { return r.identifier }
func (r *Resource) Owner() string                  { return r.owner }
func (r *Resource) Customer() CustomerID           { return r.customer }
func (r *Resource) Status() ResourceStatus         { return r.status }
func (r *Resource) StatusString() string           { return string(r.status) }
func (r *Resource) Title() string                  { return r.title }
func (r *Resource) DOI() string                    { return r.doi }
func (r *Resource) CristinIdentifier() string      { return r.cristinIdentifier }
func (r *Resource) Version() RowVersion            { return r.version }
func (r *Resource) CreatedAt() time.Time           { return r.createdAt }
func (r *Resource) ModifiedAt() time.Time          { return r.modifiedAt }

func (r *Resource) sealed() {}

// Metadata returns a copy of the publication metadata payload
func (r *Resource) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(r.metadata))
	for k, v := range r.metadata {
		out[k] = v
	}
	return out
}

// RefreshVersion issues a new row version token and returns it
func (r *Resource) RefreshVersion() RowVersion {
	r.version = NewRowVersion()
	return r.version
}

// SetTitle updates the publication title
func (r *Resource) SetTitle(title string) {
	r.title = title
	r.touch()
}

// SetMetadata replaces the metadata payload
func (r *Resource) SetMetadata(metadata map[string]interface{}) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	r.metadata = metadata
	r.touch()
}

// AssignDOI records a registered DOI. A DOI can be assigned once and
// never changed afterwards.
func (r *Resource) AssignDOI(doi string) error {
	if doi == "" {
		return pkgerrors.NewValidationError("doi cannot be empty")
	}
	if r.doi != "" && r.doi != doi {
		return pkgerrors.NewBadRequestError("resource already has a DOI")
	}
	r.doi = doi
	r.touch()
	return nil
}

// SetCristinIdentifier records the external Cristin identifier
func (r *Resource) SetCristinIdentifier(id string) {
	r.cristinIdentifier = id
	r.touch()
}

// Publish moves a draft to PUBLISHED. Publishing is idempotent for an
// already published resource.
func (r *Resource) Publish() error {
	switch r.status {
	case ResourceStatusPublished:
		return nil
	case ResourceStatusDraft:
		r.status = ResourceStatusPublished
		r.touch()
		return nil
	default:
		return pkgerrors.NewBadRequestError("only draft resources can be published")
	}
}

// MarkForDeletion moves a draft to DRAFT_FOR_DELETION
func (r *Resource) MarkForDeletion() error {
	switch r.status {
	case ResourceStatusDraftForDeletion:
		return nil
	case ResourceStatusDraft:
		r.status = ResourceStatusDraftForDeletion
		r.touch()
		return nil
	default:
		return pkgerrors.NewBadRequestError("only draft resources can be marked for deletion")
	}
}

// Restore moves a DRAFT_FOR_DELETION resource back to DRAFT
func (r *Resource) Restore() error {
	if r.status != ResourceStatusDraftForDeletion {
		return pkgerrors.NewBadRequestError("only resources marked for deletion can be restored")
	}
	r.status = ResourceStatusDraft
	r.touch()
	return nil
}

// IsDeletable reports whether the resource may be physically removed.
// Published resources and resources with an assigned DOI are never
// deletable.
func (r *Resource) IsDeletable() bool {
	return r.status == ResourceStatusDraftForDeletion && r.doi == ""
}

// Equals compares two resources under business equality. Row version
// is deliberately excluded: entities differing only in version are
// equal, which permits optimistic-concurrency retries without
// changing business identity.
func (r *Resource) Equals(other *Resource) bool {
	if other == nil {
		return false
	}
	return r.identifier.Equals(other.identifier) &&
		r.owner == other.owner &&
		r.customer.Equals(other.customer) &&
		r.status == other.status &&
		r.title == other.title &&
		r.doi == other.doi &&
		r.cristinIdentifier == other.cristinIdentifier &&
		reflect.DeepEqual(r.metadata, other.metadata) &&
		r.createdAt.Equal(other.createdAt) &&
		r.modifiedAt.Equal(other.modifiedAt)
}

func (r *Resource) touch() {
	r.modifiedAt = time.Now().UTC()
}
