// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mavlink

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/internal/errorschain"
)

// maxMessageID is the largest id representable in a v2 frame header
const maxMessageID = 1<<24 - 1

// maxPayloadSize is the largest payload a frame can carry
const maxPayloadSize = 255

// definitionDocument is the root <mavlink> element of a definition file
type definitionDocument struct {
	XMLName  xml.Name            `xml:"mavlink"`
	Includes []string            `xml:"include"`
	Messages []messageDefinition `xml:"messages>message"`
}

type messageDefinition struct {
	id     string
	name   string
	fields []fieldDefinition
}

type fieldDefinition struct {
	Type      string `xml:"type,attr"`
	Name      string `xml:"name,attr"`
	extension bool
}

// UnmarshalXML walks the children of <message> in order so that fields
// declared after <extensions/> can be told apart.
func (m *messageDefinition) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			m.id = attr.Value
		case "name":
			m.name = attr.Value
		}
	}

	extension := false
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "field":
				var field fieldDefinition
				if err := decoder.DecodeElement(&field, &element); err != nil {
					return err
				}
				field.extension = extension
				m.fields = append(m.fields, field)
			case "extensions":
				extension = true
				if err := decoder.Skip(); err != nil {
					return err
				}
			default:
				if err := decoder.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseDefinition decodes a definition document
func parseDefinition(data []byte) (*definitionDocument, error) {
	doc := new(definitionDocument)
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidDefinition, err)
	}
	for i := range doc.Includes {
		doc.Includes[i] = strings.TrimSpace(doc.Includes[i])
	}
	return doc, nil
}

// buildTypes turns the message definitions of a document into message types.
// Every problem found is reported, not only the first one.
func buildTypes(doc *definitionDocument) ([]*MessageType, error) {
	chain := errorschain.New(errorschain.ReturnAll())
	types := make([]*MessageType, 0, len(doc.Messages))
	for _, definition := range doc.Messages {
		messageType, err := buildType(definition)
		if err != nil {
			chain.AddError(err)
			continue
		}
		types = append(types, messageType)
	}

	if err := chain.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidDefinition, err)
	}
	return types, nil
}

func buildType(definition messageDefinition) (*MessageType, error) {
	name := strings.TrimSpace(definition.name)
	if name == "" {
		return nil, fmt.Errorf("message with id %q has no name", definition.id)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(definition.id), 10, 32)
	if err != nil || id > maxMessageID {
		return nil, fmt.Errorf("message %s has invalid id %q", name, definition.id)
	}

	chain := errorschain.New(errorschain.ReturnAll())
	seen := make(map[string]struct{}, len(definition.fields))
	fields := make([]Field, 0, len(definition.fields))
	size := 0
	for _, def := range definition.fields {
		fieldName := strings.TrimSpace(def.Name)
		if fieldName == "" {
			chain.AddError(fmt.Errorf("message %s has a field without name", name))
			continue
		}
		if _, ok := seen[fieldName]; ok {
			chain.AddError(fmt.Errorf("message %s declares field %s twice", name, fieldName))
			continue
		}
		seen[fieldName] = struct{}{}

		baseType, length, err := parseFieldType(def.Type)
		if err != nil {
			chain.AddError(fmt.Errorf("message %s field %s: %w", name, fieldName, err))
			continue
		}

		field := Field{
			Name:        fieldName,
			Type:        baseType,
			ArrayLength: length,
			Extension:   def.extension,
		}
		size += field.Size()
		fields = append(fields, field)
	}

	if size > maxPayloadSize {
		chain.AddError(fmt.Errorf("message %s payload of %d bytes exceeds %d", name, size, maxPayloadSize))
	}
	if err := chain.Error(); err != nil {
		return nil, err
	}
	return newMessageType(uint32(id), name, fields), nil
}
