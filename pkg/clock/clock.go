package clock

import "time"

// Clock 抽象「現在時間」，讓提前量規則可以在測試中凍結時間驗證
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}

// Fixed 永遠回傳同一個時間點
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
