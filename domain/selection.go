package domain

type Selection struct {
	Industry string `json:"industry" query:"industry" validate:"required"`
	OSType   string `json:"os" query:"os" validate:"required"`
	Quarter  string `json:"quarter" query:"quarter" validate:"required"`
}

type SelectionOptions struct {
	Industries []string  `json:"industries"`
	OSTypes    []string  `json:"os_types"`
	Quarters   []string  `json:"quarters"`
	Default    Selection `json:"default"`
}

func DefaultSelection() Selection {
	return Selection{
		Industry: "음식",
		OSType:   "Web",
		Quarter:  "1Q",
	}
}

func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		Industries: []string{"음식", "쇼핑/커머스", "게임", "금융/보험", "건강/운동", "생활/유틸리티", "엔터테인먼트", "법", "교육/학습"},
		OSTypes:    []string{"Web", "Android", "iOS"},
		Quarters:   []string{"1Q", "2Q", "3Q", "4Q"},
		Default:    DefaultSelection(),
	}
}
