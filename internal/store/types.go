package store

// YearTotals is one row of the years table: the sum of all birth counts for
// a single calendar year, per gender.
type YearTotals struct {
	Year         int
	TotalMales   int
	TotalFemales int
}

// NameRecord is one ranked per-(year, name) entry handed to CommitYear by
// the loader. A nil rank means the name had zero births of that gender in
// the year; ranks are assigned only among names with a positive count.
type NameRecord struct {
	Name        string
	MaleCount   int
	FemaleCount int
	MaleRank    *int
	FemaleRank  *int
}

// NameCountRow is one row of name_counts as read back for a single name.
// A zero rank stands in for NULL (no births of that gender in the year).
type NameCountRow struct {
	Year        int
	MaleCount   int
	FemaleCount int
	MaleRank    int
	FemaleRank  int
}
