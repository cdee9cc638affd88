package dto

// Outcome carries the non-fatal side effects of a successful mutation: media
// that could not be removed from storage and a notification that could not be sent.
type Outcome struct {
	OrphanedMedia     []string `json:"orphaned_media,omitempty"`
	NotificationError string   `json:"notification_error,omitempty"`
}

func (o Outcome) Empty() bool {
	return len(o.OrphanedMedia) == 0 && o.NotificationError == ""
}

func (o *Outcome) AddOrphaned(refs ...string) {
	o.OrphanedMedia = append(o.OrphanedMedia, refs...)
}

// Warnings renders the outcome as human readable warnings.
func (o Outcome) Warnings() []string {
	res := []string{}

	for _, ref := range o.OrphanedMedia {
		res = append(res, "media could not be removed from storage: "+ref)
	}

	if o.NotificationError != "" {
		res = append(res, "notification was not sent: "+o.NotificationError)
	}

	return res
}

// Created is the body of a successful create.
type Created struct {
	ID string `json:"id"`
}
