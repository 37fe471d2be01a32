package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aria-lang/seqmatch-go/internal/bestmatch"
)

const (
	missingField = "*"
	missingValue = "NA"
)

var tsvHeader = []string{
	"query", "reference", "score", "score2", "strand",
	"qbegin", "qend", "rbegin", "rend", "cigar",
}

func writeTSV(w io.Writer, records []bestmatch.Record) error {
	if _, err := fmt.Fprintln(w, strings.Join(tsvHeader, "\t")); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(tsvRow(r), "\t")); err != nil {
			return err
		}
	}
	return nil
}

func tsvRow(r bestmatch.Record) []string {
	row := []string{r.QueryID, missingField, missingValue, missingValue, missingField,
		missingValue, missingValue, missingValue, missingValue, missingField}
	if !r.Found || r.Result == nil {
		return row
	}

	res := r.Result
	row[1] = r.ReferenceID
	row[2] = strconv.Itoa(res.Score)
	if res.HasSecondary && res.RefEnd2 >= 0 {
		row[3] = strconv.Itoa(res.Score2)
	}
	row[4] = r.Strand
	if !res.Empty() {
		row[5] = strconv.Itoa(res.QueryBegin)
		row[6] = strconv.Itoa(res.QueryEnd)
		row[7] = strconv.Itoa(res.RefBegin)
		row[8] = strconv.Itoa(res.RefEnd)
	}
	if res.HasTrace() && len(res.Cigar) > 0 {
		row[9] = res.Cigar.String()
	}
	return row
}
