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

package validation

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

type oneOfValidator struct {
	fieldName string
	value     string
	allowed   []string
}

var _ Validator = (*oneOfValidator)(nil)

// NewOneOfValidator checks that value is one of the allowed names.
// The comparison ignores case.
func NewOneOfValidator(fieldName, value string, allowed ...string) Validator {
	return &oneOfValidator{fieldName: fieldName, value: value, allowed: allowed}
}

// Validate executes the validation
func (v oneOfValidator) Validate() error {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, name := range v.allowed {
		set.Add(strings.ToLower(name))
	}
	if !set.Contains(strings.ToLower(strings.TrimSpace(v.value))) {
		return fmt.Errorf("the [%s] must be one of %s, got %q", v.fieldName, strings.Join(v.allowed, "|"), v.value)
	}
	return nil
}
