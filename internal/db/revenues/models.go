package revenues

// Record is one persisted revenue row, created only through the enrichment
// pipeline and never edited in place. The composite unique index enforces
// at-most-one record per (date, city) atomically at the storage level.
type Record struct {
	ID                 uint     `json:"id" gorm:"primaryKey"`
	Date               string   `json:"date" gorm:"index:idx_revenues_date_city,unique"`
	City               string   `json:"city" gorm:"index:idx_revenues_date_city,unique"`
	Revenue            *float64 `json:"revenue"`
	DeclaredRevenue    float64  `json:"declared_revenue"`
	Kind               string   `json:"kind"`
	Who                *string  `json:"who"`
	Temperature        float64  `json:"temperature"`
	TemperatureFelt    float64  `json:"temperature_felt"`
	WindSpeed          float64  `json:"wind_speed"`
	MainWeather        string   `json:"main_weather"`
	WeatherDescription string   `json:"weather_description"`
	Notes              *string  `json:"notes"`
}

func (Record) TableName() string {
	return "revenues"
}
