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
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/tochemey/mavkit/errors"
)

//go:embed definitions/*.xml
var embedded embed.FS

// builtinDefinitions lists the embedded definition files in load order
var builtinDefinitions = []string{"minimal.xml", "standard.xml", "common.xml", "development.xml"}

// MessageSet holds the message types known to a decoder or encoder.
// It is safe for concurrent use once loading is done.
type MessageSet struct {
	mu     sync.RWMutex
	byID   map[uint32]*MessageType
	byName map[string]*MessageType
}

// NewMessageSet creates an empty MessageSet
func NewMessageSet() *MessageSet {
	return &MessageSet{
		byID:   make(map[uint32]*MessageType),
		byName: make(map[string]*MessageType),
	}
}

// AddFromXML loads a definition file. Included files are resolved relative
// to the directory of the file.
func (s *MessageSet) AddFromXML(filePath string) error {
	dir, name := filepath.Split(filePath)
	if dir == "" {
		dir = "."
	}
	return s.addFromFS(os.DirFS(dir), name, nil)
}

// AddFromXMLBytes loads a definition held in memory. Includes are resolved
// against the built-in definitions.
func (s *MessageSet) AddFromXMLBytes(data []byte) error {
	doc, err := parseDefinition(data)
	if err != nil {
		return err
	}
	return s.addDocument(builtinFS(), ".", doc, nil)
}

// LoadBuiltin loads the embedded minimal, standard, common and development definitions.
func (s *MessageSet) LoadBuiltin() error {
	fsys := builtinFS()
	for _, name := range builtinDefinitions {
		if err := s.addFromFS(fsys, name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Create returns a new, zeroed message of the given type
func (s *MessageSet) Create(id uint32) (*Message, error) {
	messageType, ok := s.TypeByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnknownMessageID, id)
	}
	return newMessage(messageType), nil
}

// TypeByID looks a message type up by id
func (s *MessageSet) TypeByID(id uint32) (*MessageType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messageType, ok := s.byID[id]
	return messageType, ok
}

// TypeByName looks a message type up by name
func (s *MessageSet) TypeByName(name string) (*MessageType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messageType, ok := s.byName[name]
	return messageType, ok
}

// Len returns the number of message types
func (s *MessageSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Fingerprint returns a hash identifying the loaded layouts. Two sets with the
// same ids, names and CRC extra bytes share a fingerprint.
func (s *MessageSet) Fingerprint() uint64 {
	s.mu.RLock()
	ids := make([]uint32, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	hasher := xxh3.New()
	var scratch [5]byte
	for _, id := range ids {
		messageType := s.byID[id]
		binary.LittleEndian.PutUint32(scratch[:4], id)
		scratch[4] = messageType.crcExtra
		_, _ = hasher.Write(scratch[:])
		_, _ = hasher.WriteString(messageType.name)
	}
	s.mu.RUnlock()
	return hasher.Sum64()
}

func (s *MessageSet) addFromFS(fsys fs.FS, name string, stack []string) error {
	name = path.Clean(name)
	if slices.Contains(stack, name) {
		return fmt.Errorf("%w: include cycle through %s", errors.ErrInvalidDefinition, name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read message definition %s: %w", name, err)
	}

	doc, err := parseDefinition(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.addDocument(fsys, path.Dir(name), doc, append(stack, name))
}

func (s *MessageSet) addDocument(fsys fs.FS, dir string, doc *definitionDocument, stack []string) error {
	for _, include := range doc.Includes {
		if err := s.addFromFS(fsys, path.Join(dir, include), stack); err != nil {
			return err
		}
	}

	types, err := buildTypes(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, messageType := range types {
		if err := s.register(messageType); err != nil {
			return err
		}
	}
	return nil
}

// register adds a message type. Loading the same definition twice is a no-op;
// a different layout under a known id or name is rejected.
func (s *MessageSet) register(messageType *MessageType) error {
	if existing, ok := s.byID[messageType.id]; ok {
		if existing.name == messageType.name && existing.crcExtra == messageType.crcExtra && existing.size == messageType.size {
			return nil
		}
		return fmt.Errorf("%w: message id %d defined as both %s and %s",
			errors.ErrInvalidDefinition, messageType.id, existing.name, messageType.name)
	}
	if existing, ok := s.byName[messageType.name]; ok {
		return fmt.Errorf("%w: message %s defined with ids %d and %d",
			errors.ErrInvalidDefinition, messageType.name, existing.id, messageType.id)
	}

	s.byID[messageType.id] = messageType
	s.byName[messageType.name] = messageType
	return nil
}

func builtinFS() fs.FS {
	sub, err := fs.Sub(embedded, "definitions")
	if err != nil {
		// the embedded directory is fixed at build time
		panic(err)
	}
	return sub
}
