package response

type SlotTimesResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
