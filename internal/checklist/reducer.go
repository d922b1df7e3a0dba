package checklist

// CompletionRate is the share of completed responses as a percentage in
// [0, 100]. It is 100 exactly when every response is completed.
func CompletionRate(responses []Response) (float64, error) {
	if len(responses) == 0 {
		return 0, ErrNoResponses
	}
	completed := 0
	for _, r := range responses {
		if r.Completed {
			completed++
		}
	}
	if completed == len(responses) {
		return 100, nil
	}
	return float64(completed) / float64(len(responses)) * 100, nil
}
