package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a YAML catalog and lays it over the built-in seeds. Each
// non-empty section replaces the matching default section wholesale. An empty
// path returns the defaults.
func LoadCatalog(path string) (Seeds, error) {
	seeds := Defaults()
	path = strings.TrimSpace(path)
	if path == "" {
		return seeds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seeds{}, fmt.Errorf("read seed catalog: %w", err)
	}
	var catalog Seeds
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Seeds{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	if len(catalog.Routes) > 0 {
		seeds.Routes = catalog.Routes
	}
	if len(catalog.Stops) > 0 {
		seeds.Stops = catalog.Stops
	}
	if len(catalog.Boats) > 0 {
		seeds.Boats = catalog.Boats
	}
	if len(catalog.Ports) > 0 {
		seeds.Ports = catalog.Ports
	}
	// Sections are checked after the overlay so default stops are held to
	// replaced routes too.
	if err := seeds.validate(); err != nil {
		return Seeds{}, fmt.Errorf("seed catalog %s: %w", path, err)
	}
	return seeds, nil
}

func (s Seeds) validate() error {
	var errs []error

	routeIDs := make(map[string]struct{}, len(s.Routes))
	for i, r := range s.Routes {
		if strings.TrimSpace(r.ID) == "" {
			errs = append(errs, fmt.Errorf("routes[%d]: id required", i))
		} else if _, dup := routeIDs[r.ID]; dup {
			errs = append(errs, fmt.Errorf("routes[%d]: duplicate id %q", i, r.ID))
		}
		routeIDs[r.ID] = struct{}{}
		if _, err := colorful.Hex(r.Color); err != nil {
			errs = append(errs, fmt.Errorf("routes[%d]: color %q is not #rrggbb", i, r.Color))
		}
	}

	stopIDs := make(map[string]struct{}, len(s.Stops))
	for i, st := range s.Stops {
		if strings.TrimSpace(st.ID) == "" || strings.TrimSpace(st.Name) == "" {
			errs = append(errs, fmt.Errorf("stops[%d]: id and name required", i))
		} else if _, dup := stopIDs[st.ID]; dup {
			errs = append(errs, fmt.Errorf("stops[%d]: duplicate id %q", i, st.ID))
		}
		stopIDs[st.ID] = struct{}{}
		if len(st.RouteIDs) == 0 {
			errs = append(errs, fmt.Errorf("stops[%d]: at least one route required", i))
		}
		for _, id := range st.RouteIDs {
			if _, ok := routeIDs[id]; !ok {
				errs = append(errs, fmt.Errorf("stops[%d]: unknown route %q", i, id))
			}
		}
	}

	boatIDs := make(map[string]struct{}, len(s.Boats))
	names := make(map[string]struct{}, len(s.Boats))
	for i, b := range s.Boats {
		if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Name) == "" {
			errs = append(errs, fmt.Errorf("boats[%d]: id and name required", i))
			continue
		}
		if _, dup := boatIDs[b.ID]; dup {
			errs = append(errs, fmt.Errorf("boats[%d]: duplicate id %q", i, b.ID))
		}
		boatIDs[b.ID] = struct{}{}
		if _, dup := names[b.Name]; dup {
			errs = append(errs, fmt.Errorf("boats[%d]: duplicate name %q", i, b.Name))
		}
		names[b.Name] = struct{}{}
	}
	return errors.Join(errs...)
}
