package seed

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tableflip.dev/riverline/pkg/model"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if len(s.Routes) != 3 || len(s.Stops) != 17 || len(s.Boats) != 9 || len(s.Ports) != 5 {
		t.Fatalf("unexpected seed sizes: routes=%d stops=%d boats=%d ports=%d",
			len(s.Routes), len(s.Stops), len(s.Boats), len(s.Ports))
	}
	if s.PrimaryRoute() != PrimaryRouteID {
		t.Fatalf("expected primary route %s, got %s", PrimaryRouteID, s.PrimaryRoute())
	}
	if s.DefaultPort() != DefaultPort {
		t.Fatalf("unexpected default port %q", s.DefaultPort())
	}

	// Defaults must hand out copies.
	s.Stops[0].RouteIDs[0] = "changed"
	if Defaults().Stops[0].RouteIDs[0] != "solimoes" {
		t.Fatalf("defaults share stop route slices")
	}
}

func TestMergeBoatsAppendsMissingSeeds(t *testing.T) {
	persisted := []model.Boat{
		{ID: "custom", Name: "Soberana", Capacity: 120},
		{ID: "x", Name: "Nova Lancha"},
	}
	merged, changed := MergeBoats(persisted, Defaults().Boats, nil)
	if !changed {
		t.Fatalf("expected merge to report a change")
	}
	if len(merged) != 10 {
		t.Fatalf("expected 10 boats, got %d", len(merged))
	}
	if merged[0].ID != "custom" || merged[0].Capacity != 120 {
		t.Fatalf("persisted boat was replaced: %+v", merged[0])
	}
	for _, b := range merged {
		if b.Name == "Soberana" && b.ID != "custom" {
			t.Fatalf("seed boat with matching name was appended")
		}
	}
}

func TestMergeBoatsIdempotent(t *testing.T) {
	seeds := Defaults().Boats
	once, _ := MergeBoats([]model.Boat{{ID: "x", Name: "Nova"}}, seeds, nil)
	twice, changed := MergeBoats(once, seeds, nil)
	if changed {
		t.Fatalf("second merge should be a no-op")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge is not idempotent")
	}
}

func TestMergeBoatsSkipsTombstones(t *testing.T) {
	s := Defaults()
	tombstones, added := Tombstone(nil, "Crystal", s)
	if !added {
		t.Fatalf("expected Crystal to be recorded")
	}
	if _, again := Tombstone(tombstones, "Crystal", s); again {
		t.Fatalf("tombstone recorded twice")
	}
	if _, custom := Tombstone(tombstones, "Minha Lancha", s); custom {
		t.Fatalf("non-seed names must not be tombstoned")
	}

	merged, _ := MergeBoats(nil, s.Boats, tombstones)
	for _, b := range merged {
		if b.Name == "Crystal" {
			t.Fatalf("deleted seed boat was resurrected")
		}
	}
	if len(merged) != 8 {
		t.Fatalf("expected 8 boats, got %d", len(merged))
	}

	restored, n := RestoreDefaults(merged, s)
	if n != 1 || len(restored) != 9 {
		t.Fatalf("restore added %d boats, total %d", n, len(restored))
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	body := `
boats:
  - id: c1
    name: Comandante Souza
    capacity: 40
ports:
  - Porto de Tefé
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	s, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(s.Boats) != 1 || s.Boats[0].Name != "Comandante Souza" || s.Boats[0].Capacity != 40 {
		t.Fatalf("unexpected boats: %+v", s.Boats)
	}
	if s.DefaultPort() != "Porto de Tefé" {
		t.Fatalf("unexpected default port %q", s.DefaultPort())
	}
	if len(s.Stops) != 17 {
		t.Fatalf("stops should keep defaults, got %d", len(s.Stops))
	}
}

func TestLoadCatalogRejectsDuplicateBoatNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `
boats:
  - {id: a, name: Igual}
  - {id: b, name: Igual}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestLoadCatalogEmptyPath(t *testing.T) {
	s, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Boats) != 9 {
		t.Fatalf("expected defaults")
	}
}

func TestLoadCatalogRejectsBadRouteColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `
routes:
  - {id: negro, name: Rio Negro, color: "#1e293b"}
  - {id: madeira, name: Rio Madeira, color: marrom}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	_, err := LoadCatalog(path)
	if err == nil || !strings.Contains(err.Error(), "routes[1]") {
		t.Fatalf("expected color error on routes[1], got %v", err)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().validate(); err != nil {
		t.Fatalf("built-in seeds fail validation: %v", err)
	}
}

func TestLoadCatalogRejectsBadReferences(t *testing.T) {
	cases := map[string]struct {
		body string
		want []string
	}{
		"unknown and empty routes, duplicate stop": {
			body: `
routes:
  - {id: negro, name: Rio Negro, color: "#1e293b"}
stops:
  - {id: "1", name: Manaus, routeIds: [solimoes]}
  - {id: "1", name: Novo Airão, routeIds: []}
`,
			want: []string{`stops[0]: unknown route "solimoes"`, "stops[1]: at least one route required", `stops[1]: duplicate id "1"`},
		},
		"duplicate boat ids": {
			body: `
boats:
  - {id: b1, name: Primeira}
  - {id: b1, name: Segunda}
`,
			want: []string{`boats[1]: duplicate id "b1"`},
		},
		"duplicate route ids": {
			body: `
routes:
  - {id: solimoes, name: Rio Solimões, color: "#0ea5e9"}
  - {id: solimoes, name: Outro, color: "#22c55e"}
`,
			want: []string{`routes[1]: duplicate id "solimoes"`},
		},
		"default stops on replaced routes": {
			body: `
routes:
  - {id: negro, name: Rio Negro, color: "#1e293b"}
`,
			want: []string{`unknown route "solimoes"`},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write catalog: %v", err)
			}
			_, err := LoadCatalog(path)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			for _, want := range tc.want {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("expected %q in %v", want, err)
				}
			}
		})
	}
}
