package entity

// GenreStat 类型统计
type GenreStat struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// FandomStat 同人圈统计
type FandomStat struct {
	Fandom string `json:"fandom"`
	Count  int    `json:"count"`
}
