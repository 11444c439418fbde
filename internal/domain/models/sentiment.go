package models

type RSISignal string

const (
	RSIOverbought RSISignal = "overbought"
	RSIOversold   RSISignal = "oversold"
	RSIBullish    RSISignal = "bullish"
	RSIBearish    RSISignal = "bearish"
)

type VolumeSignal string

const (
	VolumeHigh   VolumeSignal = "high"
	VolumeNormal VolumeSignal = "normal"
	VolumeLow    VolumeSignal = "low"
)

type HeadlineLabel string

const (
	HeadlinePositive HeadlineLabel = "positive"
	HeadlineNegative HeadlineLabel = "negative"
	HeadlineNeutral  HeadlineLabel = "neutral"
	HeadlineUnknown  HeadlineLabel = "unknown"
)

type SentimentLabel string

const (
	SentimentBullish SentimentLabel = "bullish"
	SentimentBearish SentimentLabel = "bearish"
	SentimentNeutral SentimentLabel = "neutral"
)

// Headline is a scored news title. Unscored titles carry HeadlineUnknown and 0.
type Headline struct {
	Title    string        `json:"title"`
	Label    HeadlineLabel `json:"sentiment"`
	Polarity float64       `json:"score"`
}

// FearGreedReading is the latest market-wide fear/greed index value.
type FearGreedReading struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
	Timestamp      string `json:"timestamp"`
}

// VolumeAnalysis compares the last 5 sessions' volume to the 20-session baseline.
type VolumeAnalysis struct {
	Ratio     float64      `json:"ratio"`
	RecentAvg int64        `json:"recent_avg"`
	PeriodAvg int64        `json:"period_avg"`
	Signal    VolumeSignal `json:"signal"`
}

// SentimentSummary is the fused view of every sentiment signal for one instrument.
// Nil pointers mean the signal was unavailable and cast no vote.
type SentimentSummary struct {
	RSI           *float64          `json:"rsi"`
	RSISignal     *RSISignal        `json:"rsi_signal"`
	Volume        *VolumeAnalysis   `json:"volume_analysis"`
	NewsSentiment *float64          `json:"news_sentiment"`
	Headlines     []Headline        `json:"news_headlines"`
	FearGreed     *FearGreedReading `json:"fear_greed"`
	Overall       SentimentLabel    `json:"overall_sentiment"`
	Score         float64           `json:"sentiment_score"`
	BullishVotes  float64           `json:"bullish_signals"`
	BearishVotes  float64           `json:"bearish_signals"`
}
