package metrics

import "testing"

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	rec.IncUserRegistered()
	rec.IncAuthAttempt("success")
	rec.IncAuthAttempt("failure")
	rec.IncAuthAttempt("failure")
	rec.IncTagCreated()
	rec.IncIngredientCreated()
	rec.IncRecipeCreated()
	rec.IncRecipeUpdated()
	rec.IncRecipeDeleted()
	rec.IncImageUploaded("success")
	rec.IncImageUploaded("rejected")

	snap := rec.Snapshot()

	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.AuthSuccesses != 1 || snap.AuthFailures != 2 {
		t.Errorf("auth counters = %d/%d, want 1/2", snap.AuthSuccesses, snap.AuthFailures)
	}
	if snap.TagsCreated != 1 || snap.IngredientsCreated != 1 {
		t.Errorf("catalog counters = %d/%d, want 1/1", snap.TagsCreated, snap.IngredientsCreated)
	}
	if snap.RecipesCreated != 1 || snap.RecipesUpdated != 1 || snap.RecipesDeleted != 1 {
		t.Errorf("recipe counters = %d/%d/%d, want 1/1/1", snap.RecipesCreated, snap.RecipesUpdated, snap.RecipesDeleted)
	}
	if snap.ImagesUploaded != 1 || snap.ImagesRejected != 1 {
		t.Errorf("image counters = %d/%d, want 1/1", snap.ImagesUploaded, snap.ImagesRejected)
	}
}
