package stractclient

import (
	"bytes"
	"encoding/json"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-report-api/internal/domain"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidJSON indica um corpo de resposta que não é JSON válido
var ErrInvalidJSON = errors.New("stract: invalid JSON body")

// Decode converte o corpo da resposta em valores genéricos: objetos viram
// *domain.Record com as chaves na ordem do documento, listas []any, números
// json.Number, textos string, booleanos bool e null nil. Um escalar no topo
// do documento é válido.
func Decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	iter := jsoniter.ParseBytes(jsonAPI, body)
	value := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Wrap(ErrInvalidJSON, iter.Error.Error())
	}

	return value, nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		record := domain.NewRecord()
		iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			record.Set(key, readValue(it))
			return true
		})
		return record
	case jsoniter.ArrayValue:
		items := make([]any, 0)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return true
		})
		return items
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readValue", "unexpected JSON token")
		return nil
	}
}
