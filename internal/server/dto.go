package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tomlord1122/todoey/internal/domain"
)

// SectionRequest is the body of section create and rename requests.
type SectionRequest struct {
	Name string `json:"name"`
}

// ItemRequest is the body of item create and edit requests.
type ItemRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Priority    PriorityValue `json:"priority"`
}

// PriorityValue accepts either a priority name ("high") or its number (1).
type PriorityValue domain.Priority

func (p *PriorityValue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := domain.ParsePriority(name)
		if err != nil {
			return err
		}
		*p = PriorityValue(parsed)
		return nil
	}
	var n int16
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("priority must be a name or a number: %w", err)
	}
	if !domain.Priority(n).Valid() {
		return fmt.Errorf("invalid priority %d: must be 1-3", n)
	}
	*p = PriorityValue(n)
	return nil
}

type SectionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ItemResponse struct {
	ID            string `json:"id"`
	SectionID     string `json:"section_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	PriorityLevel int16  `json:"priority_level"`
	IsCompleted   bool   `json:"is_completed"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toSectionResponse(s domain.Section) SectionResponse {
	return SectionResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func toItemResponse(i domain.Item) ItemResponse {
	return ItemResponse{
		ID:            i.ID,
		SectionID:     i.SectionID,
		Name:          i.Name,
		Description:   i.Description,
		Priority:      i.Priority.String(),
		PriorityLevel: int16(i.Priority),
		IsCompleted:   i.IsCompleted,
		CreatedAt:     i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     i.UpdatedAt.Format(time.RFC3339),
	}
}

func convertAll[T, R any](models []T, convert func(T) R) []R {
	out := make([]R, 0, len(models))
	for _, m := range models {
		out = append(out, convert(m))
	}
	return out
}
