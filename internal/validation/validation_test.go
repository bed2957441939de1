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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type validationTestSuite struct {
	suite.Suite
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("new chain without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
	})
	s.Run("new chain with options", func() {
		chain := New(FailFast())
		s.Assert().NotNil(chain)
		s.Assert().True(chain.failFast)
		chain2 := New(AllErrors())
		s.Assert().NotNil(chain2)
		s.Assert().False(chain2.failFast)
	})
}

func (s *validationTestSuite) TestAddValidator() {
	chain := New()
	s.Assert().NotNil(chain)
	s.Assert().Empty(chain.validators)
	chain.AddValidator(NewBooleanValidator(true, ""))
	s.Assert().NotEmpty(chain.validators)
	s.Assert().Equal(1, len(chain.validators))
}

func (s *validationTestSuite) TestAddAssertion() {
	chain := New()
	s.Assert().NotNil(chain)
	s.Assert().Empty(chain.validators)
	chain.AddAssertion(true, "")
	s.Assert().NotEmpty(chain.validators)
	s.Assert().Equal(1, len(chain.validators))
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with single validator", func() {
		chain := New()
		s.Assert().NotNil(chain)
		chain.AddValidator(NewRangeValidator("field", 0, 1, 10))
		s.Assert().Nil(chain.violations)
		err := chain.Validate()
		s.Assert().NotNil(chain.violations)
		s.Assert().Error(err)
		s.Assert().EqualError(err, "the [field] must be between 1 and 10, got 0")
	})
	s.Run("with multiple validators and FailFast option", func() {
		chain := New(FailFast())
		s.Assert().NotNil(chain)
		chain.
			AddValidator(NewRangeValidator("field", 0, 1, 10)).
			AddAssertion(false, "this is false")
		s.Assert().Nil(chain.violations)
		err := chain.Validate()
		s.Assert().Nil(chain.violations)
		s.Assert().Error(err)
		s.Assert().EqualError(err, "the [field] must be between 1 and 10, got 0")
	})
	s.Run("with multiple validators and AllErrors option", func() {
		chain := New(AllErrors())
		s.Assert().NotNil(chain)
		chain.
			AddValidator(NewRangeValidator("field", 0, 1, 10)).
			AddAssertion(false, "this is false")
		s.Assert().Nil(chain.violations)
		err := chain.Validate()
		s.Assert().NotNil(chain.violations)
		s.Assert().Error(err)
		s.Assert().EqualError(err, "the [field] must be between 1 and 10, got 0; this is false")
	})
}

func (s *validationTestSuite) TestRangeValidator() {
	s.Assert().NoError(NewRangeValidator("id", 0, 0, 255).Validate())
	s.Assert().NoError(NewRangeValidator("id", 255, 0, 255).Validate())
	s.Assert().EqualError(NewRangeValidator("id", 256, 0, 255).Validate(), "the [id] must be between 0 and 255, got 256")
	s.Assert().Error(NewRangeValidator("id", -1, 0, 255).Validate())
}

func (s *validationTestSuite) TestOneOfValidator() {
	s.Assert().NoError(NewOneOfValidator("level", "info", "debug", "info").Validate())
	s.Assert().NoError(NewOneOfValidator("level", " DEBUG ", "debug", "info").Validate())
	s.Assert().EqualError(NewOneOfValidator("level", "trace", "debug", "info").Validate(),
		`the [level] must be one of debug|info, got "trace"`)
}

func (s *validationTestSuite) TestFileValidator() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "common.xml")
	s.Require().NoError(os.WriteFile(path, []byte("<mavlink/>"), 0o600))

	s.Assert().NoError(NewFileValidator(path).Validate())
	s.Assert().ErrorIs(NewFileValidator(filepath.Join(dir, "missing.xml")).Validate(), os.ErrNotExist)
	s.Assert().EqualError(NewFileValidator(dir).Validate(), "the file ["+dir+"] is a directory")
}
