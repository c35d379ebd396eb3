package schema

// ScoringFunction is one registered scoring function.
type ScoringFunction struct {
	Identifier  string `json:"identifier"`
	ProviderID  string `json:"provider_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// Row is one dataset row keyed by column name.
type Row = map[string]any

// ScoreRequest is the body of a score request. A nil param selects the
// function's defaults.
type ScoreRequest struct {
	InputRows        []Row          `json:"input_rows"`
	ScoringFunctions map[string]any `json:"scoring_functions"`
}

// ScoringResult holds per-row scores and the aggregate for one function.
type ScoringResult struct {
	ScoreRows         []Row          `json:"score_rows"`
	AggregatedResults map[string]any `json:"aggregated_results"`
}

// ScoreResponse maps scoring function id to its result.
type ScoreResponse struct {
	Results map[string]ScoringResult `json:"results"`
}

// ScoreBatchRequest scores a whole registered dataset.
type ScoreBatchRequest struct {
	DatasetID          string         `json:"dataset_id"`
	ScoringFunctions   map[string]any `json:"scoring_functions"`
	SaveResultsDataset bool           `json:"save_results_dataset"`
}

// ScoreBatchResponse is returned by score-batch.
type ScoreBatchResponse struct {
	DatasetID string                   `json:"dataset_id,omitempty"`
	Results   map[string]ScoringResult `json:"results"`
}

// ColumnType declares the type of one dataset column.
type ColumnType struct {
	Type string `json:"type"`
}

// URL wraps a dataset location.
type URL struct {
	URI string `json:"uri"`
}

// DatasetDef registers a dataset with the server.
type DatasetDef struct {
	Identifier    string                `json:"identifier"`
	ProviderID    string                `json:"provider_id,omitempty"`
	URL           URL                   `json:"url"`
	DatasetSchema map[string]ColumnType `json:"dataset_schema"`
	Metadata      map[string]any        `json:"metadata,omitempty"`
}

// PaginatedRows is one page of dataset rows.
type PaginatedRows struct {
	Rows          []Row  `json:"rows"`
	TotalCount    int    `json:"total_count"`
	NextPageToken string `json:"next_page_token,omitempty"`
}
