package model

import (
	"net/url"
	"strings"
	"time"
)

type Grade string

const (
	GradeBigGood Grade = "big_good"
	GradeGood    Grade = "good"
	GradeBad     Grade = "bad"
	GradeBigBad  Grade = "big_bad"
)

// Rank orders grades for display: big_bad < bad < good < big_good.
// The pipeline never sorts by it.
func (g Grade) Rank() int {
	switch g {
	case GradeBigBad:
		return 0
	case GradeBad:
		return 1
	case GradeGood:
		return 2
	case GradeBigGood:
		return 3
	}
	return -1
}

func (g Grade) Valid() bool {
	return g.Rank() >= 0
}

type Region string

const (
	RegionNone   Region = ""
	RegionKR     Region = "kr"
	RegionUS     Region = "us"
	RegionEU     Region = "eu"
	RegionGlobal Region = "global"
)

func (r Region) Valid() bool {
	switch r {
	case RegionKR, RegionUS, RegionEU, RegionGlobal:
		return true
	}
	return false
}

const (
	CategoryStock  = "stock"
	CategoryCrypto = "crypto"
	CategoryKpop   = "kpop"

	UnknownSource = "Unknown"
)

type RawRecord struct {
	Title       string
	Description string
	Link        string
	Source      string
	PublishedAt time.Time
	Query       string
	Confidence  float64
}

type AnalyzedRecord struct {
	ID          string
	Headline    string
	Summary     string
	Source      string
	URL         string
	Grade       Grade
	Confidence  float64
	PublishedAt time.Time
	Region      Region
	Keywords    []string
}

// SourceFromLink returns the host of link without a leading "www.".
func SourceFromLink(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return UnknownSource
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
