package filemanager

import (
	"fmt"
	"time"
)

// EventType names a semantic notification emitted by the core
type EventType string

const (
	EventItemCreated       EventType = "item_created"
	EventItemDeleted       EventType = "item_deleted"
	EventItemsDeleted      EventType = "items_deleted"
	EventShareRequested    EventType = "share_requested"
	EventDownloadRequested EventType = "download_requested"
	EventRenameRequested   EventType = "rename_requested"
	EventUploadRequested   EventType = "upload_requested"
	EventOpenRequested     EventType = "open_requested"
	EventViewChanged       EventType = "view_changed"
)

// Event is handed to the notification collaborator, which decides how to show it.
// Name is set for single-item events, Count for bulk ones.
type Event struct {
	Type     EventType `json:"type"`
	Name     string    `json:"name,omitempty"`
	Count    int       `json:"count,omitempty"`
	ItemID   string    `json:"item_id,omitempty"`
	Revision uint64    `json:"revision,omitempty"`
	At       time.Time `json:"at"`
}

// Title is a short human heading for the event
func (e Event) Title() string {
	switch e.Type {
	case EventItemCreated:
		return "Folder created"
	case EventItemDeleted:
		return "Item deleted"
	case EventItemsDeleted:
		return "Items deleted"
	case EventShareRequested:
		if e.Name == "" {
			return "Share links copied"
		}
		return "Share link copied"
	case EventDownloadRequested:
		return "Download started"
	case EventRenameRequested:
		return "Rename"
	case EventUploadRequested:
		return "Upload"
	case EventOpenRequested:
		return "Open"
	default:
		return string(e.Type)
	}
}

// Description is the body text matching the Title
func (e Event) Description() string {
	switch e.Type {
	case EventItemCreated:
		return fmt.Sprintf("%q has been created successfully.", e.Name)
	case EventItemDeleted:
		return fmt.Sprintf("%q has been deleted.", e.Name)
	case EventItemsDeleted:
		return fmt.Sprintf("%d items have been deleted.", e.Count)
	case EventShareRequested:
		if e.Name == "" {
			return fmt.Sprintf("Share links for %d items have been copied.", e.Count)
		}
		return fmt.Sprintf("Share link for %q has been copied to clipboard.", e.Name)
	case EventDownloadRequested:
		if e.Name == "" {
			return fmt.Sprintf("Downloading %d items...", e.Count)
		}
		return fmt.Sprintf("Downloading %q...", e.Name)
	case EventRenameRequested:
		return "Rename functionality would be implemented here."
	case EventUploadRequested:
		return "File upload would be implemented here."
	case EventOpenRequested:
		return fmt.Sprintf("Opening %q...", e.Name)
	default:
		return ""
	}
}
