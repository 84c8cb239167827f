package usecase

import (
	"path"

	"feat/internal/domain"
)

// ScanUseCase inspects the surface of one feature.
type ScanUseCase struct {
	resolver  *Resolver
	collector *Collector
}

func NewScanUseCase(resolver *Resolver, collector *Collector) *ScanUseCase {
	return &ScanUseCase{resolver: resolver, collector: collector}
}

// Scan collects the items of the named feature. When paths are given the
// feature is built from them directly and need not be configured.
func (u *ScanUseCase) Scan(name string, paths []string) (*Collection, error) {
	if len(paths) > 0 {
		cleaned := make([]string, 0, len(paths))
		for _, p := range paths {
			cleaned = append(cleaned, path.Clean(p))
		}
		return u.collector.CollectItems(domain.Feature{Name: name, Paths: cleaned}), nil
	}

	f, err := u.resolver.Lookup(name)
	if err != nil {
		return nil, err
	}
	return u.collector.CollectItems(f), nil
}
