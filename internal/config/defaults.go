package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:              "info",
			TriggerPhrase:         "hey mylo",
			MaxConcurrentMessages: 5,
			MaxMessageLength:      4000,
		},
		Channels: ChannelsConfig{
			Telegram: TelegramConfig{
				Enabled:   false,
				ParseMode: "Markdown",
			},
		},
		Notion: NotionConfig{
			APIVersion: "2022-06-28",
			PageSize:   20,
		},
		Airtable: AirtableConfig{
			Table:      "Payouts",
			MaxRecords: 1000,
			Fields: LedgerFieldsMap{
				Identifier: "Discord Handle",
				Amount:     "Amount",
				Currency:   "Currency",
				PaidOut:    "Paid Out",
			},
		},
		Stats: StatsConfig{
			Enabled: true,
			DBPath:  "~/.mylo/stats.db",
		},
	}
}
