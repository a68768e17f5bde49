package league

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Constants are the tunable thresholds of the simulation. They travel with
// the game state and can be replaced wholesale by a patch.
type Constants struct {
	PlayerAgeMin            int `json:"player_age_min" yaml:"player_age_min"`
	PlayerAgeMax            int `json:"player_age_max" yaml:"player_age_max"`
	PlayerOverallMin        int `json:"player_overall_min" yaml:"player_overall_min"`
	PlayerOverallMax        int `json:"player_overall_max" yaml:"player_overall_max"`
	PlayerPotentialMaxBonus int `json:"player_potential_max_bonus" yaml:"player_potential_max_bonus"`

	AIOfferChance        float64 `json:"ai_offer_chance" yaml:"ai_offer_chance"`
	NormalAcceptChance   float64 `json:"normal_accept_chance" yaml:"normal_accept_chance"`
	HighAcceptChance     float64 `json:"high_accept_chance" yaml:"high_accept_chance"`
	AllowMultipleSuitors bool    `json:"allow_multiple_suitors" yaml:"allow_multiple_suitors"`

	YouthGrowthChance      float64 `json:"youth_growth_chance" yaml:"youth_growth_chance"`
	AgingDeclineChance     float64 `json:"aging_decline_chance" yaml:"aging_decline_chance"`
	LateAgingDeclineChance float64 `json:"late_aging_decline_chance" yaml:"late_aging_decline_chance"`
	WeeklyEnergyRecovery   int     `json:"weekly_energy_recovery" yaml:"weekly_energy_recovery"`

	HomeAdvantage    float64 `json:"home_advantage" yaml:"home_advantage"`
	YellowCardChance float64 `json:"yellow_card_chance" yaml:"yellow_card_chance"`
	RedCardChance    float64 `json:"red_card_chance" yaml:"red_card_chance"`
	InjuryChance     float64 `json:"injury_chance" yaml:"injury_chance"`

	LeaguePrize         decimal.Decimal `json:"league_prize" yaml:"league_prize"`
	SalaryWeeklyDivisor int64           `json:"salary_weekly_divisor" yaml:"salary_weekly_divisor"`
	StartingCash        decimal.Decimal `json:"starting_cash" yaml:"starting_cash"`
	MarketPoolSize      int             `json:"market_pool_size" yaml:"market_pool_size"`

	ManagerOfferChanceLow     float64 `json:"manager_offer_chance_low" yaml:"manager_offer_chance_low"`
	ManagerOfferChanceMedium  float64 `json:"manager_offer_chance_medium" yaml:"manager_offer_chance_medium"`
	ManagerOfferChanceHigh    float64 `json:"manager_offer_chance_high" yaml:"manager_offer_chance_high"`
	ManagerOfferMinReputation int     `json:"manager_offer_min_reputation" yaml:"manager_offer_min_reputation"`
	StartingManagerReputation int     `json:"starting_manager_reputation" yaml:"starting_manager_reputation"`
}

// DefaultConstants returns the stock tuning of the game.
func DefaultConstants() Constants {
	return Constants{
		PlayerAgeMin:            18,
		PlayerAgeMax:            34,
		PlayerOverallMin:        45,
		PlayerOverallMax:        60,
		PlayerPotentialMaxBonus: 20,

		AIOfferChance:        0.3,
		NormalAcceptChance:   0.6,
		HighAcceptChance:     0.9,
		AllowMultipleSuitors: true,

		YouthGrowthChance:      0.15,
		AgingDeclineChance:     0.08,
		LateAgingDeclineChance: 0.20,
		WeeklyEnergyRecovery:   15,

		HomeAdvantage:    5,
		YellowCardChance: 0.10,
		RedCardChance:    0.01,
		InjuryChance:     0.02,

		LeaguePrize:         decimal.NewFromInt(10_000_000),
		SalaryWeeklyDivisor: 52,
		StartingCash:        decimal.NewFromInt(15_000_000),
		MarketPoolSize:      20,

		ManagerOfferChanceLow:     0.1,
		ManagerOfferChanceMedium:  0.2,
		ManagerOfferChanceHigh:    0.05,
		ManagerOfferMinReputation: 50,
		StartingManagerReputation: 50,
	}
}

// LoadConstants reads constants from a YAML file. Keys missing from the file
// keep their default values.
func LoadConstants(path string) (Constants, error) {
	c := DefaultConstants()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read constants: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse constants: %w", err)
	}
	return c, nil
}
