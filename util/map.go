package util

func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func IntFloat64MapKeys(m map[int]float64) []int {
	return MapKeys[int, float64](m)
}

// DefaultMap is a map which lazily creates values for missing keys.
type DefaultMap[K comparable, V any] struct {
	content     map[K]V
	defaultFunc func(K) V
}

func NewDefaultMap[K comparable, V any](defaultFunc func(K) V) *DefaultMap[K, V] {
	return &DefaultMap[K, V]{make(map[K]V), defaultFunc}
}

func (m *DefaultMap[K, V]) Get(key K) V {
	var val V
	var ok bool
	if val, ok = m.content[key]; !ok {
		val = m.defaultFunc(key)
		m.content[key] = val
	}
	return val
}

func (m *DefaultMap[K, V]) Len() int {
	return len(m.content)
}

// EjectMap returns the underlying map, leaving the DefaultMap unusable.
func (m *DefaultMap[K, V]) EjectMap() map[K]V {
	content := m.content
	m.content = nil
	return content
}
