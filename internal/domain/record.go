package domain

import "strings"

// Record é um mapa ordenado de coluna para valor, na ordem em que as chaves
// foram vistas pela primeira vez
type Record struct {
	keys   []string
	values map[string]any
}

func NewRecord() *Record {
	return &Record{
		keys:   make([]string, 0),
		values: make(map[string]any),
	}
}

// RecordOf monta um Record a partir de pares chave/valor alternados
func RecordOf(pairs ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		r.Set(key, pairs[i+1])
	}
	return r
}

// Set grava o valor; uma chave já existente mantém a sua posição
func (r *Record) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value retorna o valor da chave ou nil quando ausente
func (r *Record) Value(key string) any {
	return r.values[key]
}

func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *Record) Delete(key string) {
	if _, exists := r.values[key]; !exists {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys retorna uma cópia das chaves em ordem
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	return len(r.keys)
}

// LookupFold procura uma chave ignorando maiúsculas/minúsculas. Quando mais
// de uma chave casa, vence a última.
func (r *Record) LookupFold(name string) (string, bool) {
	found := ""
	ok := false
	for _, k := range r.keys {
		if strings.EqualFold(k, name) {
			found = k
			ok = true
		}
	}
	return found, ok
}

func (r *Record) Clone() *Record {
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}
