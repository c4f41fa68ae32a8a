package capture

import (
	"tracewise/internal/source"
)

// Hydrate fills in missing source line text on every frame (and on the
// syntax location) from the cache, loading origins from disk on first
// use. A source that cannot be read degrades to empty line text and
// never fails the capture: frames from dynamically generated code
// simply render without an excerpt.
func Hydrate(inst *ErrorInstance, cache *source.Cache) {
	for i := range inst.Frames {
		f := &inst.Frames[i]
		if f.LineText == "" {
			f.LineText = lineFromCache(cache, f.Origin, f.Line)
		}
	}
	if inst.Syntax != nil && inst.Syntax.LineText == "" {
		inst.Syntax.LineText = lineFromCache(cache, inst.Syntax.Origin, inst.Syntax.Line)
	}
	if inst.CausedBy != nil {
		Hydrate(inst.CausedBy, cache)
	}
}

func lineFromCache(cache *source.Cache, name string, line uint32) string {
	if cache == nil || name == "" {
		return ""
	}
	origin, ok := cache.GetByName(name)
	if !ok {
		id, err := cache.Load(name)
		if err != nil {
			// источник недоступен - деградируем до пустой строки
			return ""
		}
		origin = cache.Get(id)
	}
	text, _ := origin.Line(line)
	return text
}
