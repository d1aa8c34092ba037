package schemas

type ActivityRead struct {
	ID             uint    `json:"id"`
	NaceCode       string  `json:"nace_code"`
	ActivityGroup  *string `json:"activity_group"`
	NaceVersion    *string `json:"nace_version"`
	Classification *string `json:"classification"`
}
