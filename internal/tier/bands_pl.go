package tier

// SixBand is the production table
var SixBand = MustTable("six-band", []Band{
	{
		Name:  "foundations",
		Label: "Fundamenty wymagają budowy (krytyczny stan, brak podstaw strategicznych)",
		Max:   15,
		Directive: "Bądź szczerze bezpośredni i wspierający. Pomóż użytkownikowi zrozumieć, że budowanie fundamentów strategicznych to nie koszt, ale inwestycja, która uratuje go przed marnowaniem budżetów. " +
			"Zaproponuj JEDNO konkretne ćwiczenie lub pytanie do refleksji, które może rozpocząć zmianę myślenia. " +
			"Zakończ życząc odwagi w podejmowaniu pierwszych kroków i wiary, że fundamenty są w zasięgu ręki.",
	},
	{
		Name:  "turning-point",
		Label: "Pora na strategiczne podstawy (pojedyncze elementy, brak spójności)",
		Max:   25,
		Directive: "Ton stanowczy, ale pełen nadziei. Użytkownik jest w punkcie przełomowym – pomóż mu to zobaczyć jako szansę, nie zagrożenie. " +
			"Zaproponuj JEDNO konkretne, małe działanie strategiczne, które może wykonać samodzielnie w ciągu tygodnia (np. warsztat z zespołem, audyt jednego kanału komunikacji). " +
			"Zakończ życząc konsekwencji we wdrażaniu i podkreślając, że już sam fakt wykonania audytu świadczy o gotowości na zmianę.",
	},
	{
		Name:  "consistency",
		Label: "Dobra baza, brakuje spójności (solidne podstawy, ale chaotyczne działanie)",
		Max:   35,
		Directive: "Doceniaj to, co już działa. Pomóż użytkownikowi zobaczyć, że ma solidne podstawy i teraz potrzebuje spójności. " +
			"Zaproponuj framework myślowy lub konkretne pytanie, które pomoże mu samodzielnie zidentyfikować największe niespójności (np. \"Jakie trzy decyzje marketingowe z ostatnich 6 miesięcy były sprzeczne z Twoimi wartościami?\"). " +
			"Zakończ życząc systematyczności i przypominając, że spójność to efekt małych, codziennych decyzji.",
	},
	{
		Name:  "growth",
		Label: "Silna pozycja, potencjał wzrostu (dobra forma, przestrzeń do optymalizacji)",
		Max:   45,
		Directive: "Ton optymistyczny i ekspercki. Użytkownik ma już dobry fundament – pomóż mu zobaczyć, które małe optymalizacje przyniosą największy efekt dźwigni. " +
			"Podziel się jedną głęboką, strategiczną obserwacją z jego odpowiedzi, która może otworzyć nową perspektywę. " +
			"Zakończ życząc odwagi w eksperymentowaniu i przypominając, że to faza, w której małe zmiany dają wielkie rezultaty.",
	},
	{
		Name:  "advanced",
		Label: "Zaawansowana strategia marki (silne aktywo, czołówka branży)",
		Max:   54,
		Directive: "Ton partnerski i pełen szacunku. Użytkownik jest w czołówce – nie udzielaj rad, ale podziel się strategiczną refleksją na temat jego odpowiedzi, która może zainspirować go do myślenia w nowych kategoriach. " +
			"Możesz zadać jedno prowokacyjne pytanie, które otworzy mu nową perspektywę na markę jako aktywo. " +
			"Zakończ życząc dalszego szlifowania mistrzostwa i celebrowania osiągnięć.",
	},
	{
		Name:  "mastery",
		Label: "Mistrzostwo brandingowe (elita, autonomiczny lider rynku)",
		Max:   60,
		Directive: "Ton pełen głębokiego szacunku dla elity. Nie dawaj rad – raczej doceniaj mistrzowski poziom i podziel się subtelną, filozoficzną refleksją o naturze marki jako żywego organizmu i aktywa, które wymaga ciągłej uwagi nawet na szczycie. " +
			"Zakończ życząc dalszego inspirowania branży i budowania dziedzictwa, które przetrwa pokolenia.",
	},
})

// ThreeBand is the coarser table from the prompt sandbox
var ThreeBand = MustTable("three-band", []Band{
	{
		Name:  "low",
		Label: "Sytuacja wymaga pilnej interwencji",
		Max:   25,
		Directive: "Bądź bezpośredni. Podkreśl, że sytuacja wymaga pilnej interwencji i że intensywna praca nad strategią jest najskuteczniejszym, pierwszym krokiem do jej naprawy. " +
			"Zakończ słowami otuchy, ale podkreślającymi wagę podjęcia odważnej decyzji.",
	},
	{
		Name:  "medium",
		Label: "Solidne podstawy, czas na samodzielną pracę",
		Max:   45,
		Directive: "Zaproponuj konkretne ćwiczenie lub obszar do samodzielnej pracy. " +
			"Zakończ inspirującym zdaniem, które zmotywuje do podjęcia tego pierwszego kroku i życz powodzenia.",
	},
	{
		Name:  "high",
		Label: "Lider rynku",
		Max:   60,
		Directive: "Zrezygnuj z tonu \"naprawiania\". Zakończ propozycją partnerskiej wymiany perspektyw między liderami rynkowymi. " +
			"Zakończ z wyrazami szacunku dla dotychczasowych osiągnięć.",
	},
})
