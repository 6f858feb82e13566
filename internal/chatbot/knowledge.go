package chatbot

// KnowledgeItem is one topic in the knowledge base: the keyword lists that
// identify it, the minimum classification confidence required to serve it, and
// its localized response text.
type KnowledgeItem struct {
	Topic         string
	Intent        Intent
	Keywords      []string
	MinConfidence float64
	Responses     map[Language]string
}

// KnowledgeStore is a static table of topic -> localized response text.
// Lookups are pure; SetOverride exists so external content sources (the
// marketing team's CMS) can replace the built-in copy at startup, before the
// store is shared.
type KnowledgeStore struct {
	items []KnowledgeItem
}

// NewKnowledgeStore builds the store with the built-in marketing copy.
func NewKnowledgeStore() *KnowledgeStore {
	items := make([]KnowledgeItem, len(defaultKnowledgeItems))
	copy(items, defaultKnowledgeItems)
	return &KnowledgeStore{items: items}
}

// Lookup returns the response text for an intent in the given language, when a
// knowledge item for that intent exists and confidence clears its threshold.
func (k *KnowledgeStore) Lookup(intent Intent, lang Language, confidence float64) (string, bool) {
	for _, item := range k.items {
		if item.Intent != intent {
			continue
		}
		if confidence < item.MinConfidence {
			continue
		}
		if text := localized(item.Responses, lang); text != "" {
			return text, true
		}
	}
	return "", false
}

// SetOverride replaces the response text of the item matching topic for one
// language. Returns false if no such topic exists. Not safe for concurrent
// use with Lookup; call during startup only.
func (k *KnowledgeStore) SetOverride(topic string, lang Language, text string) bool {
	if text == "" || !lang.IsValid() {
		return false
	}
	for i := range k.items {
		if k.items[i].Topic != topic {
			continue
		}
		// Copy-on-write so the default table is never aliased.
		responses := make(map[Language]string, len(k.items[i].Responses)+1)
		for l, t := range k.items[i].Responses {
			responses[l] = t
		}
		responses[lang] = text
		k.items[i].Responses = responses
		return true
	}
	return false
}

// Topics returns the topic names in declaration order.
func (k *KnowledgeStore) Topics() []string {
	topics := make([]string, 0, len(k.items))
	for _, item := range k.items {
		topics = append(topics, item.Topic)
	}
	return topics
}

var defaultKnowledgeItems = []KnowledgeItem{
	{
		Topic:         "product-overview",
		Intent:        IntentProductInquiry,
		Keywords:      []string{"product", "erp", "platform", "features", "modules"},
		MinConfidence: 0.6,
		Responses: map[Language]string{
			LangEnglish: "PetroCore is an ERP platform built for the petroleum industry. It covers fuel inventory and depot management, fleet and distribution tracking, retail station operations, and regulatory reporting — all in one system. Which area matters most to your business?",
			LangFrench:  "PetroCore est un ERP conçu pour l'industrie pétrolière : gestion des stocks de carburant et des dépôts, suivi de flotte et de distribution, exploitation des stations-service et reporting réglementaire, le tout dans un seul système. Quel domaine vous intéresse le plus ?",
			LangArabic:  "PetroCore هو نظام تخطيط موارد مصمم لقطاع النفط: إدارة مخزون الوقود والمستودعات، تتبع الأسطول والتوزيع، تشغيل محطات الوقود، والتقارير التنظيمية في نظام واحد. ما المجال الأهم لعملك؟",
			LangSwahili: "PetroCore ni mfumo wa ERP uliojengwa kwa sekta ya mafuta: usimamizi wa hifadhi ya mafuta na maghala, ufuatiliaji wa magari na usambazaji, uendeshaji wa vituo vya mafuta, na ripoti za kisheria — vyote katika mfumo mmoja. Ni eneo gani muhimu zaidi kwako?",
			LangHausa:   "PetroCore dandalin ERP ne da aka gina wa masana'antar mai: sarrafa ajiyar mai da ma'ajiya, bibiyar motoci da rarrabawa, gudanar da gidajen mai, da rahotannin hukuma — duka a tsari daya. Wane bangare ya fi muhimmanci a gare ka?",
		},
	},
	{
		Topic:         "pricing",
		Intent:        IntentPricingInquiry,
		Keywords:      []string{"pricing", "price", "cost", "quote", "subscription"},
		MinConfidence: 0.6,
		Responses: map[Language]string{
			LangEnglish: "Our pricing is tiered by company size and modules: Starter from $299/month for single-depot operations, Professional from $799/month, and Enterprise with custom pricing for multi-country deployments. Would you like a detailed quote for your operation?",
			LangFrench:  "Nos tarifs dépendent de la taille de l'entreprise et des modules : Starter à partir de 299 $/mois pour un dépôt unique, Professional à partir de 799 $/mois, et Enterprise sur devis pour les déploiements multi-pays. Souhaitez-vous un devis détaillé ?",
			LangArabic:  "أسعارنا متدرجة حسب حجم الشركة والوحدات: Starter من 299 دولاراً شهرياً للمستودع الواحد، وProfessional من 799 دولاراً شهرياً، وEnterprise بسعر مخصص للانتشار متعدد الدول. هل تريد عرض سعر مفصلاً؟",
			LangSwahili: "Bei zetu zinategemea ukubwa wa kampuni na moduli: Starter kuanzia $299 kwa mwezi kwa ghala moja, Professional kuanzia $799 kwa mwezi, na Enterprise kwa bei maalum kwa nchi nyingi. Ungependa nukuu ya kina?",
			LangHausa:   "Farashinmu ya danganta da girman kamfani da kayan aiki: Starter daga $299 a wata don ma'ajiya daya, Professional daga $799 a wata, Enterprise kuma da farashi na musamman. Kana son cikakken kimar farashi?",
		},
	},
	{
		Topic:         "demo",
		Intent:        IntentDemoRequest,
		Keywords:      []string{"demo", "trial", "demonstration", "try"},
		MinConfidence: 0.6,
		Responses: map[Language]string{
			LangEnglish: "Great — I can set up a personalized demo with one of our product specialists. It takes about 30 minutes and is tailored to your operation. Please share your work email and company name, or use the demo form on this page, and our team will reach out within one business day.",
			LangFrench:  "Parfait — je peux organiser une démonstration personnalisée avec l'un de nos spécialistes. Elle dure environ 30 minutes et est adaptée à votre activité. Laissez votre e-mail professionnel et le nom de votre entreprise, ou utilisez le formulaire de démonstration, et notre équipe vous contactera sous un jour ouvré.",
			LangArabic:  "رائع — يمكنني ترتيب عرض توضيحي مخصص مع أحد مختصي المنتج. يستغرق حوالي 30 دقيقة ويُصمم حسب عملك. شاركنا بريدك المهني واسم شركتك أو استخدم نموذج الطلب، وسيتواصل فريقنا خلال يوم عمل.",
			LangSwahili: "Vizuri — naweza kupanga onyesho maalum na mtaalamu wetu wa bidhaa. Huchukua kama dakika 30 na hulengwa kwa biashara yako. Tafadhali toa barua pepe yako ya kazi na jina la kampuni, au tumia fomu ya onyesho, na timu yetu itawasiliana ndani ya siku moja ya kazi.",
			LangHausa:   "Madalla — zan iya shirya gwaji na musamman tare da kwararrenmu. Yana daukar kamar minti 30 kuma an tsara shi bisa sana'arka. Don Allah ka bar email din aiki da sunan kamfani, ko ka yi amfani da fom din gwaji, kuma za mu tuntube ka cikin rana daya ta aiki.",
		},
	},
	{
		Topic:         "support",
		Intent:        IntentSupportRequest,
		Keywords:      []string{"support", "help", "issue", "problem"},
		MinConfidence: 0.6,
		Responses: map[Language]string{
			LangEnglish: "For existing customers, our support team is available 24/7 at support@petrocore.com or through the in-app help desk. If you're evaluating PetroCore, I'm happy to answer questions right here — what's the issue?",
			LangFrench:  "Pour nos clients, l'équipe support est disponible 24h/24 via support@petrocore.com ou le centre d'aide intégré. Si vous évaluez PetroCore, je peux répondre à vos questions ici — quel est le problème ?",
			LangArabic:  "لعملائنا الحاليين، فريق الدعم متاح على مدار الساعة عبر support@petrocore.com أو مركز المساعدة داخل التطبيق. وإن كنت تقيّم PetroCore فيسعدني الإجابة هنا — ما المشكلة؟",
			LangSwahili: "Kwa wateja waliopo, timu yetu ya msaada inapatikana saa 24 kupitia support@petrocore.com au dawati la msaada ndani ya mfumo. Kama unatathmini PetroCore, niko tayari kujibu maswali hapa — tatizo ni nini?",
			LangHausa:   "Ga abokan ciniki, ana samun tawagar tallafi kowane lokaci ta support@petrocore.com ko cibiyar taimako cikin manhajar. Idan kana nazarin PetroCore, ina nan don amsa tambayoyi — menene matsalar?",
		},
	},
	{
		Topic:         "company",
		Intent:        IntentCompanyInfo,
		Keywords:      []string{"company", "about", "who are you", "petrocore"},
		MinConfidence: 0.6,
		Responses: map[Language]string{
			LangEnglish: "PetroCore has been building software for the petroleum supply chain since 2016. We serve over 200 fuel distributors, depot operators, and retail networks across Africa, the Middle East, and Europe, with offices in Lagos, Nairobi, and Dubai.",
			LangFrench:  "PetroCore développe des logiciels pour la chaîne d'approvisionnement pétrolière depuis 2016. Nous servons plus de 200 distributeurs, opérateurs de dépôts et réseaux de stations en Afrique, au Moyen-Orient et en Europe, avec des bureaux à Lagos, Nairobi et Dubaï.",
			LangArabic:  "تطوّر PetroCore برمجيات سلسلة إمداد النفط منذ 2016. نخدم أكثر من 200 موزع وقود ومشغل مستودعات وشبكات محطات في أفريقيا والشرق الأوسط وأوروبا، ولدينا مكاتب في لاغوس ونيروبي ودبي.",
			LangSwahili: "PetroCore imekuwa ikitengeneza programu za mnyororo wa usambazaji wa mafuta tangu 2016. Tunahudumia zaidi ya wasambazaji 200, waendeshaji wa maghala na mitandao ya vituo barani Afrika, Mashariki ya Kati na Ulaya, tukiwa na ofisi Lagos, Nairobi na Dubai.",
			LangHausa:   "PetroCore tana kera manhajoji don jerin samar da mai tun 2016. Muna hidima wa sama da kamfanoni 200 na rarraba mai, ma'ajiya da gidajen mai a Afirka, Gabas ta Tsakiya da Turai, da ofisoshi a Lagos, Nairobi da Dubai.",
		},
	},
}
