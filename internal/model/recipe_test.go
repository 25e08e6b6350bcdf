package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRecipe_TagIDs(t *testing.T) {
	recipe := &Recipe{
		Tags: []*Tag{
			{ID: "tag1", Name: "Dessert"},
			{ID: "tag2", Name: "Vegan"},
		},
	}

	got := recipe.TagIDs()
	want := []string{"tag1", "tag2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagIDs() = %v, want %v", got, want)
	}

	empty := &Recipe{}
	if len(empty.TagIDs()) != 0 {
		t.Error("TagIDs() of recipe without tags should be empty")
	}
}

func TestRecipe_IngredientIDs(t *testing.T) {
	recipe := &Recipe{
		Ingredients: []*Ingredient{
			{ID: "ing1", Name: "Salt"},
		},
	}

	got := recipe.IngredientIDs()
	if !reflect.DeepEqual(got, []string{"ing1"}) {
		t.Errorf("IngredientIDs() = %v, want [ing1]", got)
	}
}

func TestRecipe_HasImage(t *testing.T) {
	recipe := &Recipe{}
	if recipe.HasImage() {
		t.Error("recipe without image path should report no image")
	}

	recipe.ImagePath = "recipe/abc.png"
	if !recipe.HasImage() {
		t.Error("recipe with image path should report an image")
	}
}

func TestRecipe_OwnerNotSerialized(t *testing.T) {
	recipe := &Recipe{
		ID:      "r1",
		Name:    "Cake",
		OwnerID: "secret-owner",
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(data), "secret-owner") {
		t.Error("owner id must not appear in serialized recipe")
	}
}

func TestToken_IsRevoked(t *testing.T) {
	token := &Token{}
	if token.IsRevoked() {
		t.Error("token without revoked_at should not be revoked")
	}

	now := time.Now().UTC()
	token.RevokedAt = &now
	if !token.IsRevoked() {
		t.Error("token with revoked_at should be revoked")
	}
}

func TestToken_SecretNotSerialized(t *testing.T) {
	token := &Token{
		ID:         "t1",
		SecretHash: "$argon2id$super-secret-hash",
	}

	data, err := json.Marshal(token)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(data), "super-secret-hash") {
		t.Error("secret hash must not appear in serialized token")
	}
}
