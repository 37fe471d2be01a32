// Package seqio reads query and reference collections.
package seqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

func init() {
	// symbols are checked against the search alphabet, not by the reader
	seq.ValidateSeq = false
}

// ReadFile reads every record of a FASTA or FASTQ file, optionally
// compressed. "-" reads standard input. Records keep their order; sequences
// are upper-cased but not validated.
func ReadFile(path string) ([]*sequence.Sequence, error) {
	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	var records []*sequence.Sequence
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// the reader reuses record buffers
		records = append(records, sequence.Record(
			string(record.ID),
			strings.ToUpper(string(record.Seq.Seq)),
		))
	}
	return records, nil
}

// ReadFiles reads several files into one collection.
func ReadFiles(paths ...string) ([]*sequence.Sequence, error) {
	var all []*sequence.Sequence
	for _, p := range paths {
		records, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// ParseFASTA parses FASTA text. The ID is the first word of the header and
// the rest of the header becomes the description. Sequence lines are
// concatenated with whitespace removed.
func ParseFASTA(r io.Reader) ([]*sequence.Sequence, error) {
	var (
		records []*sequence.Sequence
		cur     *sequence.Sequence
		bases   strings.Builder
		lineNo  int
	)
	flush := func() {
		if cur != nil {
			cur.Bases = strings.ToUpper(bases.String())
			records = append(records, cur)
		}
		bases.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			flush()
			header := strings.TrimSpace(line[1:])
			id, desc, _ := strings.Cut(header, " ")
			cur = &sequence.Sequence{ID: id, Description: strings.TrimSpace(desc)}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: sequence data before the first header: %w", lineNo, sequence.ErrInvalidInput)
		}
		for _, f := range strings.Fields(line) {
			bases.WriteString(f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return records, nil
}

// WriteFASTA writes sequences in FASTA format.
func WriteFASTA(w io.Writer, sequences []*sequence.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sequences {
		if _, err := bw.WriteString(s.ToFASTA()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
