// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scaffoldrc/pkg/fsys"
	"github.com/walteh/scaffoldrc/pkg/operation"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

func TestExpandSegment(t *testing.T) {
	data := tmpl.Map{"foo": "foo", "bar": "bar", "slash": "a/b", "empty": "", "dots": ".."}

	tests := []struct {
		name    string
		segment string
		want    string
		wantErr error
	}{
		{name: "no_delimiter", segment: "plain.txt", want: "plain.txt"},
		{name: "two_tags", segment: "<%= foo %><%= bar %>", want: "foobar"},
		{name: "mixed_text", segment: "pre-<%= foo %>.go", want: "pre-foo.go"},
		{name: "undefined", segment: "<%= nope %>", wantErr: tmpl.ErrUndefinedPlaceholder},
		{name: "separator", segment: "<%= slash %>", wantErr: operation.ErrInvalidDestination},
		{name: "empty_value", segment: "<%= empty %>", wantErr: operation.ErrInvalidDestination},
		{name: "parent_value", segment: "<%= dots %>", wantErr: operation.ErrInvalidDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := operation.ExpandSegment(tt.segment, data)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformer(t *testing.T) {
	data := tmpl.Map{"name": "world"}

	tests := []struct {
		name      string
		file      string
		input     []byte
		chunkSize int
		want      []byte
		wantErr   error
	}{
		{name: "text_rendered", file: "a.txt", input: []byte("hi <%= name %>"), want: []byte("hi world")},
		{name: "text_without_tags", file: "a.txt", input: []byte("hi there"), want: []byte("hi there")},
		{name: "empty_file", file: "a.txt", input: nil, want: nil},
		{name: "binary_untouched", file: "a.bin", input: []byte("\x00<%= name %>"), want: []byte("\x00<%= name %>")},
		{name: "undefined_fails", file: "a.txt", input: []byte("<%= other %>"), wantErr: tmpl.ErrUndefinedPlaceholder},
		{
			name:      "every_chunk_rendered",
			file:      "a.txt",
			input:     []byte("<%= name %>|<%= name %>|"),
			chunkSize: 12,
			want:      []byte("world|world|"),
		},
		{
			name:      "tag_split_across_chunks_kept_literal",
			file:      "a.txt",
			input:     []byte("ab<%= name %>"),
			chunkSize: 6,
			want:      []byte("ab<%= name %>"),
		},
		{
			name:      "classification_fixed_by_first_chunk",
			file:      "noext",
			input:     []byte("\x00\x01\x02\x03plain <%= name %>"),
			chunkSize: 4,
			want:      []byte("\x00\x01\x02\x03plain <%= name %>"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tr := operation.NewTransformer(fsys.NewClassifier(), tt.chunkSize)
			n, err := tr.Transform(&out, bytes.NewReader(tt.input), tt.file, data)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), out.String())
			assert.Equal(t, int64(out.Len()), n)
		})
	}
}

func TestTransformerLargeText(t *testing.T) {
	line := "value=<%= v %>\n"
	input := strings.Repeat(line, 10000)
	var out bytes.Buffer

	// chunk size is a multiple of the line length so no tag is split
	tr := operation.NewTransformer(nil, len(line)*64)
	_, err := tr.Transform(&out, strings.NewReader(input), "big.conf", tmpl.Map{"v": "1"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("value=1\n", 10000), out.String())
}

func TestPolicy(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	fileInfo, err := os.Stat(file)
	require.NoError(t, err)
	dirInfo, err := os.Stat(sub)
	require.NoError(t, err)

	tests := []struct {
		name      string
		overwrite bool
		src       os.FileInfo
		dest      string
		wantErr   error
	}{
		{name: "missing_allowed", src: fileInfo, dest: filepath.Join(dir, "new")},
		{name: "file_over_file_denied", src: fileInfo, dest: file, wantErr: operation.ErrAlreadyExists},
		{name: "file_over_file_overwrite", overwrite: true, src: fileInfo, dest: file},
		{name: "dir_over_dir_allowed", src: dirInfo, dest: sub},
		{name: "dir_over_file_denied", src: dirInfo, dest: file, wantErr: operation.ErrAlreadyExists},
		{name: "file_over_dir_denied", src: fileInfo, dest: sub, wantErr: operation.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := operation.Policy{FS: fsys.NewOS(), Overwrite: tt.overwrite}
			err := p.Check(tt.src, tt.dest)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseSymlinkMode(t *testing.T) {
	m, err := operation.ParseSymlinkMode("Follow")
	require.NoError(t, err)
	assert.Equal(t, operation.SymlinkFollow, m)
	assert.Equal(t, "follow", m.String())

	m, err = operation.ParseSymlinkMode("preserve")
	require.NoError(t, err)
	assert.Equal(t, operation.SymlinkPreserve, m)

	_, err = operation.ParseSymlinkMode("")
	require.Error(t, err)
	assert.False(t, operation.SymlinkMode(0).Valid())
}
