package models

const FetchErrorPrefix = "データ取得エラー: "

// FetchResult is either a Success carrying a series or a Failure carrying the message
// shown to the user. Exactly one of Series and Err is meaningful, selected by OK.
type FetchResult struct {
	Query  Query
	OK     bool
	Series ObservationSeries
	Err    error
}

func Success(q Query, s ObservationSeries) FetchResult {
	return FetchResult{Query: q, OK: true, Series: s}
}

func Failure(q Query, err error) FetchResult {
	return FetchResult{Query: q, OK: false, Err: err}
}

// Message is the single user-facing error text for a failed fetch.
func (r FetchResult) Message() string {
	if r.OK || r.Err == nil {
		return ""
	}
	return FetchErrorPrefix + r.Err.Error()
}
