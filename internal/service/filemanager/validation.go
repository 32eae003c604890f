package filemanager

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
)

func paletteValues() []interface{} {
	values := make([]interface{}, len(models.Palette))
	for i, c := range models.Palette {
		values[i] = c
	}
	return values
}

var nameRules = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, config.MaxItemNameLength),
	validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New("cannot be only whitespace")
		}
		return nil
	}),
}

// validateItem checks the per-item invariants: names, enums, size only on
// files, team id present iff team scoped. Parent checks need the collection
// and live on the store.
func validateItem(item *models.Item) error {
	err := validation.ValidateStruct(item,
		validation.Field(&item.ID, validation.Required),
		validation.Field(&item.Name, nameRules...),
		validation.Field(&item.Kind, validation.Required, validation.In(models.KindFile, models.KindFolder)),
		validation.Field(&item.Size,
			validation.When(item.Kind == models.KindFolder, validation.Nil.Error("must be absent on folders")),
			validation.Min(int64(0)),
		),
		validation.Field(&item.Color, validation.In(paletteValues()...)),
		validation.Field(&item.TeamID,
			validation.When(item.IsTeamScoped, validation.Required).Else(validation.Nil.Error("must be absent on personal items")),
		),
		validation.Field(&item.Permissions, validation.Each(validation.By(validatePermission))),
	)
	if err != nil {
		return domain.NewValidation("item %q: %v", item.ID, err)
	}
	return nil
}

func validatePermission(value interface{}) error {
	p, ok := value.(models.Permission)
	if !ok {
		return errors.New("must be a permission")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.ActorID, validation.Required),
		validation.Field(&p.Role, validation.Required, validation.In(models.RoleViewer, models.RoleEditor, models.RoleAdmin)),
	)
}

// validateName validates a rename target
func validateName(name string) error {
	if err := validation.Validate(name, nameRules...); err != nil {
		return domain.NewValidation("name: %v", err)
	}
	return nil
}

// validateColor rejects tags outside the palette
func validateColor(color models.Color) error {
	if err := validation.Validate(color, validation.Required, validation.In(paletteValues()...)); err != nil {
		return domain.NewValidation("color %q: %v", color, err)
	}
	return nil
}

// validateScope rejects a team scope without a team id
func validateScope(scope models.Scope) error {
	if scope.TeamID != nil && strings.TrimSpace(*scope.TeamID) == "" {
		return domain.NewValidation("team scope requires a team id")
	}
	return nil
}
