package universe

import "github.com/pdro-dev/wheelscreener/internal/market"

// defaultCatalog is the built-in B3 equity universe. Every instrument trades
// in BRL on B3; the screener was written for the Brazilian options market.
func defaultCatalog() []market.Instrument {
	b3 := func(symbol, name, sector string) market.Instrument {
		return market.Instrument{
			Symbol:   symbol,
			Name:     name,
			Sector:   sector,
			Currency: "BRL",
			Exchange: "B3",
		}
	}

	return []market.Instrument{
		// Technology
		b3("MGLU3.SA", "Magazine Luiza", market.SectorTechnology),
		b3("PETZ3.SA", "Petz", market.SectorTechnology),
		b3("LWSA3.SA", "Locaweb", market.SectorTechnology),

		// Financial Services
		b3("ITUB4.SA", "Itaú Unibanco", market.SectorFinancial),
		b3("BBDC4.SA", "Bradesco", market.SectorFinancial),
		b3("BBAS3.SA", "Banco do Brasil", market.SectorFinancial),
		b3("SANB11.SA", "Santander Brasil", market.SectorFinancial),

		// Consumer Cyclical
		b3("VVAR3.SA", "Via Varejo", market.SectorConsumerCyclical),
		b3("LREN3.SA", "Lojas Renner", market.SectorConsumerCyclical),
		b3("AMER3.SA", "Americanas", market.SectorConsumerCyclical),

		// Healthcare
		b3("RDOR3.SA", "Rede D'Or", market.SectorHealthcare),
		b3("HAPV3.SA", "Hapvida", market.SectorHealthcare),
		b3("QUAL3.SA", "Qualicorp", market.SectorHealthcare),

		// Energy
		b3("PETR4.SA", "Petrobras", market.SectorEnergy),
		b3("PETR3.SA", "Petrobras ON", market.SectorEnergy),
		b3("PRIO3.SA", "PetroRio", market.SectorEnergy),

		// Basic Materials
		b3("VALE3.SA", "Vale", market.SectorBasicMaterials),
		b3("CSNA3.SA", "CSN", market.SectorBasicMaterials),
		b3("USIM5.SA", "Usiminas", market.SectorBasicMaterials),

		// Consumer Defensive
		b3("ABEV3.SA", "Ambev", market.SectorConsumerDefense),
		b3("JBSS3.SA", "JBS", market.SectorConsumerDefense),
		b3("BRFS3.SA", "BRF", market.SectorConsumerDefense),

		// Utilities
		b3("ELET3.SA", "Eletrobras", market.SectorUtilities),
		b3("CPFE3.SA", "CPFL Energia", market.SectorUtilities),
		b3("EGIE3.SA", "Engie Brasil", market.SectorUtilities),

		// Communication Services
		b3("TIMS3.SA", "TIM", market.SectorCommunication),
		b3("VIVT3.SA", "Vivo", market.SectorCommunication),

		// Real Estate
		b3("MULT3.SA", "Multiplan", market.SectorRealEstate),
		b3("BRML3.SA", "BR Malls", market.SectorRealEstate),

		// Industrials
		b3("AZUL4.SA", "Azul", market.SectorIndustrials),
		b3("GOLL4.SA", "Gol", market.SectorIndustrials),
		b3("RAIL3.SA", "Rumo", market.SectorIndustrials),
	}
}
