package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONBIntArray is a custom type for handling integer arrays in JSONB (text on SQLite)
type JSONBIntArray []int

// Value implements the driver.Valuer interface
func (a JSONBIntArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]int(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBIntArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIntArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBIntArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// GormDBDataType picks the column type per dialect
func (JSONBIntArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Recipe is the only persisted entity. ingredient ids and amounts are parallel arrays.
type Recipe struct {
	ID                      uuid.UUID     `gorm:"type:varchar(36);primaryKey" json:"id" swaggertype:"string" format:"uuid" example:"3f6c2a9e-8b1d-4c7e-9a51-0d2f4e6b8c13"`
	CreatedAt               time.Time     `json:"createdAt"`
	UpdatedAt               time.Time     `json:"updatedAt"`
	Name                    string        `gorm:"size:255;not null" json:"name" example:"Scrambled Eggs"`
	Description             string        `gorm:"type:text" json:"desc" example:"4 eggs, salt, pepper"`
	ImagePath               string        `gorm:"size:1024" json:"imagePath" example:"../images/scrambled_eggs.jpg"`
	IngredientIDs           JSONBIntArray `gorm:"column:ingredient_ids;not null" json:"ingredientIds" swaggertype:"array,integer" example:"100001,100002,100003"`
	IngredientAmountsInGram JSONBIntArray `gorm:"column:ingredient_amounts_in_gram;not null" json:"ingredientAmountsInGram" swaggertype:"array,integer" example:"50,1400,360"`
}

// BeforeCreate assigns the id when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReplaceableColumns are the columns a full-document update overwrites
var ReplaceableColumns = []string{
	"name",
	"description",
	"image_path",
	"ingredient_ids",
	"ingredient_amounts_in_gram",
	"updated_at",
}
