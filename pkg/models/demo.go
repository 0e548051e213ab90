package models

// DemoPlan returns a complete sample plan: a small digital-marketing agency
// financed by own funds and a five-year bank loan.
func DemoPlan() BusinessPlanData {
	return BusinessPlanData{
		ProjectTitle:   "DigiTech Solutions",
		Industry:       "IT services",
		LegalStructure: LegalStructureSARL,

		Equipments: []EquipmentItem{
			{Name: "Workstations", UnitPriceExclTax: 5000, Quantity: 3, VATRate: 19, DepreciationDuration: 3},
			{Name: "Office furniture", UnitPriceExclTax: 5000, Quantity: 1, VATRate: 19, DepreciationDuration: 5},
			{Name: "Software licences", UnitPriceExclTax: 5000, Quantity: 1, VATRate: 19, DepreciationDuration: 3},
		},
		Personnel: []PersonnelItem{
			{Position: "Community manager", GrossMonthlySalary: 1200, Headcount: 2, MonthsWorkedPerYear: 12, StartYear: 1},
			{Position: "Web developer", GrossMonthlySalary: 1800, Headcount: 1, MonthsWorkedPerYear: 12, StartYear: 1},
		},
		Products: []ProductItem{
			{Name: "Presence pack", UnitPrice: 500, AnnualQuantity: 240},
			{Name: "Website pack", UnitPrice: 2500, AnnualQuantity: 12},
		},
		ExternalCharges: ExternalCharges{
			Rent:        14400,
			Utilities:   2400,
			Maintenance: 1000,
			Insurance:   1500,
			Fuel:        2000,
			Telecom:     3600,
			Advertising: 5000,
			BankFees:    600,
			Other:       2000,
		},

		StartupCosts:   2000,
		WorkingCapital: 10000,
		Funding: Funding{
			PersonalContribution: 25000,
			BankLoan:             20000,
		},
		Loan: LoanTerms{Amount: 20000, DurationMonths: 60, AnnualRate: 10},

		TurnoverGrowthRate: 15,
		ExpensesGrowthRate: 5,
		DiscountRate:       10,
		ProjectionYears:    7,
		CruiseYear:         3,

		TaxRegime:              TaxRegimeReal,
		TaxRate:                15,
		SocialChargesRate:      17.07,
		VocationalTrainingRate: 2,
		HousingFundRate:        1,
		LocalTaxRate:           0.2,
		StampDuty:              500,

		Narrative: Narrative{
			ProjectDescription: "Digital marketing agency helping small businesses move online: social media management, websites, paid search.",
			Strengths:          "Strong technical skills, wide professional network, light cost structure.",
			Weaknesses:         "Small founding team, dependence on third-party ad platforms.",
			Opportunities:      "Fast digitalisation of small businesses, public support for tech start-ups.",
			Threats:            "International agencies entering the market, rising advertising costs.",
		},
	}
}
