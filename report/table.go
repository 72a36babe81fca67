package report

import "ytreport/youtube"

// DefaultHeaders are the column titles of the report, in column order.
var DefaultHeaders = []string{
	"Título",
	"Visualizações",
	"Likes",
	"Comentários",
	"Data de publicação",
	"Grupo",
}

// Record is one report row.
type Record struct {
	Title       string
	Views       string
	Likes       string
	Comments    string
	PublishedAt string
	Group       string

	// StatsAbsent marks a public video whose statistics lookup found nothing.
	// Views, Likes and Comments are empty.
	StatsAbsent bool
}

// NewRecord builds the row for an enriched video.
func NewRecord(v youtube.Video, group string) Record {
	return Record{
		Title:       v.Title,
		Views:       v.Stats.Views,
		Likes:       v.Stats.Likes,
		Comments:    v.Stats.Comments,
		PublishedAt: v.PublishedAt,
		Group:       group,
		StatsAbsent: v.Stats.Absent,
	}
}

// Cells returns the row as strings in column order.
func (r Record) Cells() []string {
	return []string{r.Title, r.Views, r.Likes, r.Comments, r.PublishedAt, r.Group}
}

// Table is an ordered list of records. Rows keep insertion order.
type Table struct {
	headers []string
	records []Record
}

// NewTable creates an empty table. A nil headers slice selects DefaultHeaders.
func NewTable(headers []string) *Table {
	if headers == nil {
		headers = DefaultHeaders
	}
	return &Table{headers: append([]string(nil), headers...)}
}

// Append adds a record at the end of the table.
func (t *Table) Append(r Record) {
	t.records = append(t.records, r)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Headers returns the column titles.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Records returns the records in order.
func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Rows returns every record as cells, without the header row.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.records))
	for i, r := range t.records {
		rows[i] = r.Cells()
	}
	return rows
}

// CountByGroup returns how many records fall in each group.
func (t *Table) CountByGroup() map[string]int {
	counts := make(map[string]int)
	for _, r := range t.records {
		counts[r.Group]++
	}
	return counts
}
