package staging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/repos"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// record is one input row as text. Columns without a tag here, such as the
// leading index column, are ignored.
type record struct {
	ID                  string `csv:"id"`
	Budget              string `csv:"budget"`
	Genres              string `csv:"genres"`
	Homepage            string `csv:"homepage"`
	Keywords            string `csv:"keywords"`
	OriginalLanguage    string `csv:"original_language"`
	OriginalTitle       string `csv:"original_title"`
	Overview            string `csv:"overview"`
	Popularity          string `csv:"popularity"`
	ProductionCompanies string `csv:"production_companies"`
	ProductionCountries string `csv:"production_countries"`
	ReleaseDate         string `csv:"release_date"`
	Revenue             string `csv:"revenue"`
	Runtime             string `csv:"runtime"`
	SpokenLanguages     string `csv:"spoken_languages"`
	Status              string `csv:"status"`
	Tagline             string `csv:"tagline"`
	Title               string `csv:"title"`
	VoteAverage         string `csv:"vote_average"`
	VoteCount           string `csv:"vote_count"`
	Cast                string `csv:"cast"`
	Crew                string `csv:"crew"`
	Director            string `csv:"director"`
}

// Loader copies a delimited movie file into the staging table.
type Loader struct {
	log     *logger.Logger
	tx      aggregates.TxRunner
	staging repos.StagingRepo
}

func NewLoader(log *logger.Logger, tx aggregates.TxRunner, staging repos.StagingRepo) *Loader {
	return &Loader{
		log:     log.With("service", "StagingLoader"),
		tx:      tx,
		staging: staging,
	}
}

// Load upserts every row of r keyed by id in one transaction and returns the number of
// distinct ids written. When an id repeats the last row wins.
func (l *Loader) Load(ctx context.Context, r io.Reader) (n int, err error) {
	const op = "staging.load"
	ctx, span := observability.StartSpan(ctx, op)
	defer func() { observability.EndSpan(span, err) }()

	rows, err := decode(r)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))

	var staged int64
	err = l.tx.InTx(ctx, func(dbc dbctx.Context) error {
		var uerr error
		n, uerr = l.staging.Upsert(dbc, rows)
		if uerr != nil {
			return aggregates.MapError(op, uerr)
		}
		staged, uerr = l.staging.Count(dbc)
		return aggregates.MapError(op, uerr)
	})
	if err != nil {
		return 0, err
	}
	l.log.Info("Staging loaded", "rows", n, "staging_total", staged)
	return n, nil
}

func decode(r io.Reader) ([]*types.StagingMovie, error) {
	const op = "staging.decode"
	dec, err := csvutil.NewDecoder(csv.NewReader(skipBOM(r)))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, etlerr.New(etlerr.CodeValidation, op, "input has no header row", err)
		}
		return nil, etlerr.New(etlerr.CodeParse, op, "read header", err)
	}
	if !slices.Contains(dec.Header(), "id") {
		return nil, etlerr.New(etlerr.CodeValidation, op, "missing required column \"id\"", nil)
	}

	byID := map[int64]int{}
	var out []*types.StagingMovie
	for line := 2; ; line++ {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, etlerr.New(etlerr.CodeParse, op, fmt.Sprintf("row %d", line), err)
		}
		sm, err := rec.staging()
		if err != nil {
			return nil, etlerr.New(etlerr.CodeValidation, op, fmt.Sprintf("row %d: %v", line, err), err)
		}
		if i, dup := byID[sm.ID]; dup {
			out[i] = sm
			continue
		}
		byID[sm.ID] = len(out)
		out = append(out, sm)
	}
	return out, nil
}

func (rec record) staging() (*types.StagingMovie, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rec.ID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", rec.ID)
	}
	return &types.StagingMovie{
		ID:                  id,
		Budget:              nullable(rec.Budget),
		Genres:              nullable(rec.Genres),
		Homepage:            nullable(rec.Homepage),
		Keywords:            nullable(rec.Keywords),
		OriginalLanguage:    nullable(rec.OriginalLanguage),
		OriginalTitle:       nullable(rec.OriginalTitle),
		Overview:            nullable(rec.Overview),
		Popularity:          nullable(rec.Popularity),
		ProductionCompanies: nullable(rec.ProductionCompanies),
		ProductionCountries: nullable(rec.ProductionCountries),
		ReleaseDateRaw:      nullable(rec.ReleaseDate),
		Revenue:             nullable(rec.Revenue),
		Runtime:             nullable(rec.Runtime),
		SpokenLanguages:     nullable(rec.SpokenLanguages),
		Status:              nullable(rec.Status),
		Tagline:             nullable(rec.Tagline),
		Title:               nullable(rec.Title),
		VoteAverage:         nullable(rec.VoteAverage),
		VoteCount:           nullable(rec.VoteCount),
		Cast:                nullable(rec.Cast),
		Crew:                nullable(rec.Crew),
		Director:            nullable(rec.Director),
	}, nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(3)
	}
	return br
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// nullable maps an empty cell to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
