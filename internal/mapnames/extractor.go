package mapnames

import (
	"log/slog"

	"wadmaps/internal/logging"
	"wadmaps/internal/textlump"
	"wadmaps/internal/wad"
)

// SourceStatus records what happened to one metadata lump during
// extraction.
type SourceStatus struct {
	Lump     string `json:"lump"`
	Found    bool   `json:"found"`
	Readable bool   `json:"readable"`
	Patches  int    `json:"patches"`
}

// Report is the full outcome of one extraction.
type Report struct {
	Kind      wad.Kind       `json:"kind"`
	Size      int64          `json:"size_bytes"`
	LumpCount int            `json:"lump_count"`
	Slots     []string       `json:"slots"`
	Sources   []SourceStatus `json:"sources"`
	Names     Table          `json:"names"`
}

// Extractor runs the extraction pipeline. The zero value is not usable;
// construct with New. An Extractor holds no per-archive state and may be
// shared between goroutines.
type Extractor struct {
	logger  *slog.Logger
	sources []textlump.Source
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithSources replaces the metadata sources. They are applied in the given
// order, each overriding the previous ones.
func WithSources(sources ...textlump.Source) Option {
	return func(e *Extractor) {
		e.sources = append([]textlump.Source(nil), sources...)
	}
}

// New builds an Extractor. A nil logger discards output.
func New(logger *slog.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		logger:  logging.NewComponentLogger(logger, "mapnames"),
		sources: textlump.Sources(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the slot title table for the archive in data.
func (e *Extractor) Extract(data []byte) (Table, error) {
	report, err := e.Report(data)
	if err != nil {
		return nil, err
	}
	return report.Names, nil
}

// Report extracts the slot title table together with the details of how it
// was built. The returned error, if any, matches wad.ErrFormat.
func (e *Extractor) Report(data []byte) (Report, error) {
	archive, err := wad.Open(data)
	if err != nil {
		return Report{}, err
	}

	slots := archive.Slots()
	names := make(Table, len(slots))
	known := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		names[slot] = slot
		known[slot] = struct{}{}
	}
	e.logger.Debug("detected map slots",
		logging.String(logging.FieldKind, string(archive.Header.Kind)),
		logging.Int("lump_count", len(archive.Lumps)),
		logging.Int("slot_count", len(slots)))

	aux := archive.Aux()
	statuses := make([]SourceStatus, 0, len(e.sources))
	for _, source := range e.sources {
		status := e.applySource(archive, aux, source, names, known)
		statuses = append(statuses, status)
	}

	names.Normalize()

	return Report{
		Kind:      archive.Header.Kind,
		Size:      archive.Size(),
		LumpCount: len(archive.Lumps),
		Slots:     slots,
		Sources:   statuses,
		Names:     names,
	}, nil
}

func (e *Extractor) applySource(archive *wad.Archive, aux map[string]wad.Lump, source textlump.Source, names Table, known map[string]struct{}) SourceStatus {
	status := SourceStatus{Lump: source.Lump()}
	lump, ok := aux[source.Lump()]
	if !ok {
		return status
	}
	status.Found = true

	data, err := archive.LumpData(lump)
	if err != nil {
		logging.WarnWithContext(e.logger, "metadata lump out of range", "lump_out_of_range",
			logging.String(logging.FieldLump, lump.Name),
			logging.Int64("offset", lump.Offset),
			logging.Int64("size", lump.Size),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the archive directory is damaged or crafted"),
			logging.String(logging.FieldImpact, "titles from this lump are ignored"))
		return status
	}
	status.Readable = true

	patches := source.Apply(decodeText(data), known)
	for _, patch := range patches {
		names[patch.Slot] = patch.Name
		e.logger.Debug("map title set",
			logging.String(logging.FieldSlot, patch.Slot),
			logging.String(logging.FieldLump, lump.Name),
			logging.String("title", patch.Name))
	}
	status.Patches = len(patches)

	e.logger.Debug("applied metadata lump",
		logging.String(logging.FieldLump, lump.Name),
		logging.Int("patches", len(patches)))
	return status
}

// Extract runs a default Extractor over data.
func Extract(data []byte) (Table, error) {
	return New(nil).Extract(data)
}
