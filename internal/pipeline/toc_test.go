package pipeline

import (
	"reflect"
	"testing"
)

func TestBuildTOC(t *testing.T) {
	t.Parallel()

	fragment := `<h2 id="orphan">Before any h1</h2>
<h1 id="intro">Petstore <code>v1</code></h1>
<h1 id="pets">pets</h1>
<h2 id="listpets">listPets</h2>
<h3 id="listpets-parameters">Parameters</h3>
<h2 id="createpets">createPets</h2>
<h1>No id</h1>
<h1 id="schemas">Schemas</h1>
<h2 id="schemapet">Pet</h2>`

	t.Run("two levels", func(t *testing.T) {
		t.Parallel()
		got, err := BuildTOC(fragment, 2)
		if err != nil {
			t.Fatalf("BuildTOC() error = %v", err)
		}
		want := []TOCEntry{
			{ID: "intro", Text: "Petstore v1"},
			{ID: "pets", Text: "pets", Children: []TOCEntry{
				{ID: "listpets", Text: "listPets"},
				{ID: "createpets", Text: "createPets"},
			}},
			{ID: "schemas", Text: "Schemas", Children: []TOCEntry{
				{ID: "schemapet", Text: "Pet"},
			}},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildTOC() = %+v\nwant %+v", got, want)
		}
	})

	t.Run("one level", func(t *testing.T) {
		t.Parallel()
		got, err := BuildTOC(fragment, 1)
		if err != nil {
			t.Fatalf("BuildTOC() error = %v", err)
		}
		for _, entry := range got {
			if len(entry.Children) > 0 {
				t.Errorf("entry %q has children with maxLevel 1", entry.ID)
			}
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("no headings", func(t *testing.T) {
		t.Parallel()
		got, err := BuildTOC("<p>text</p>", 2)
		if err != nil {
			t.Fatalf("BuildTOC() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("BuildTOC() = %+v, want empty", got)
		}
	})
}
