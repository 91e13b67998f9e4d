package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()

	expected := []string{
		"01.0000-50",
		"02.0300-50",
		"03.0090-00",
		"04.5000-00",
		"05.5000-70",
		"00.0000-00",
	}

	if len(cats) != len(expected) {
		t.Fatalf("expected %d categories, got %d", len(expected), len(cats))
	}
	for i, code := range expected {
		if cats[i].Code != code {
			t.Errorf("position %d: expected code %s, got %s", i, code, cats[i].Code)
		}
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0] = Category{Name: "Mutated", Code: "99.9999-99"}

	assert.Equal(t, "Death Certificate", Categories()[0].Name)
}

func TestByCode(t *testing.T) {
	c, ok := ByCode("02.0300-50")
	assert.True(t, ok)
	assert.Equal(t, "Will or Trust", c.Name)

	_, ok = ByCode("99.0000-00")
	assert.False(t, ok)
}

func TestByCodeCoversAllCategories(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ByCode(c.Code)
		assert.True(t, ok, "code %s must resolve", c.Code)
		assert.Equal(t, c, got)
	}
}

func TestIsCatchAll(t *testing.T) {
	assert.True(t, Miscellaneous.IsCatchAll())

	for _, c := range Categories() {
		if c.Code == CatchAllCode {
			continue
		}
		assert.False(t, c.IsCatchAll(), "category %s must not be catch-all", c.Name)
	}
}

func TestCodesAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, c := range Categories() {
		if prev, dup := seen[c.Code]; dup {
			t.Errorf("code %s shared by %s and %s", c.Code, prev, c.Name)
		}
		seen[c.Code] = c.Name
	}
}
