// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package blobstorage

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/l3montree-dev/reviewboard/shared"
)

// ObjectKey is the storage key of an uploaded application file.
func ObjectKey(now time.Time, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return fmt.Sprintf("applications/%d-%s", now.UnixMilli(), base)
}

// progressReader reports the share of size read so far. Every percentage
// is reported at most once, 100 only after the reader is drained.
type progressReader struct {
	reader     io.Reader
	size       int64
	read       int64
	last       int
	onProgress shared.ProgressFunc
}

func newProgressReader(reader io.Reader, size int64, onProgress shared.ProgressFunc) *progressReader {
	return &progressReader{
		reader:     reader,
		size:       size,
		last:       -1,
		onProgress: onProgress,
	}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	p.read += int64(n)
	if p.onProgress == nil {
		return n, err
	}

	percent := 100
	if err != io.EOF && p.size > 0 {
		percent = min(int(p.read*100/p.size), 99)
	} else if err != io.EOF {
		percent = p.last
	}
	if percent > p.last {
		p.last = percent
		p.onProgress(percent)
	}
	return n, err
}
