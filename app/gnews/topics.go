package gnews

import (
	"net/url"
	"regexp"
	"strings"
)

// TopicInfo is a localized Google News topic: display name plus the
// opaque topic ID used in RSS topic URLs.
type TopicInfo struct {
	Name string
	ID   string
}

// CountryConfig carries the per-country presentation settings used when
// rendering publication dates.
type CountryConfig struct {
	Language   string
	CEID       string
	Timezone   string
	DateLayout string
}

// topicMap holds localized topic IDs keyed by topic keyword and
// language code. The IDs are opaque values minted by Google News.
var topicMap = map[string]map[string]TopicInfo{
	"headlines": {
		"ko": {"헤드라인", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFZxYUdjU0FtdHZHZ0pMVWlnQVAB"},
		"en": {"Headlines", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFZxYUdjU0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"ヘッドライン", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFZxYUdjU0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"头条", "CAAqKggKIiRDQkFTRlFvSUwyMHZNRFZxYUdjU0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"korea": {
		"ko": {"대한민국", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFp4WkRNU0FtdHZLQUFQAQ"},
		"en": {"South Korea", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFp4WkRNU0FtVnVLQUFQAQ"},
		"ja": {"大韓民国", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFp4WkRNU0FtcGhLQUFQAQ"},
		"zh": {"韩国", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRFp4WkRNU0JYcG9MVU5PS0FBUAE"},
	},
	"us": {
		"ko": {"미국", "CAAqIggKIhxDQkFTRHdvSkwyMHZNRGxqTjNjd0VnSnJieWdBUAE"},
		"en": {"U.S.", "CAAqIggKIhxDQkFTRHdvSkwyMHZNRGxqTjNjd0VnSmxiaWdBUAE"},
		"ja": {"米国", "CAAqIggKIhxDQkFTRHdvSkwyMHZNRGxqTjNjd0VnSnFZU2dBUAE"},
		"zh": {"美国", "CAAqJggKIiBDQkFTRWdvSkwyMHZNRGxqTjNjd0VnVjZhQzFEVGlnQVAB"},
	},
	"japan": {
		"ko": {"일본", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRE5mTTJRU0FtdHZLQUFQAQ"},
		"en": {"Japan", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRE5mTTJRU0FtVnVLQUFQAQ"},
		"ja": {"日本", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRE5mTTJRU0FtcGhLQUFQAQ"},
		"zh": {"日本", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRE5mTTJRU0JYcG9MVU5PS0FBUAE"},
	},
	"china": {
		"ko": {"중국", "CAAqIggKIhxDQkFTRHdvSkwyMHZNR1F3TlhjekVnSnJieWdBUAE"},
		"en": {"China", "CAAqIggKIhxDQkFTRHdvSkwyMHZNR1F3TlhjekVnSmxiaWdBUAE"},
		"ja": {"中華人民共和国", "CAAqIggKIhxDQkFTRHdvSkwyMHZNR1F3TlhjekVnSnFZU2dBUAE"},
		"zh": {"中国", "CAAqJggKIiBDQkFTRWdvSkwyMHZNR1F3TlhjekVnVjZhQzFEVGlnQVAB"},
	},
	"world": {
		"ko": {"세계", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx1YlY4U0FtdHZHZ0pMVWlnQVAB"},
		"en": {"World", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx1YlY4U0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"世界", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx1YlY4U0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"全球", "CAAqKggKIiRDQkFTRlFvSUwyMHZNRGx1YlY4U0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"politics": {
		"ko": {"정치", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFZ4ZERBU0FtdHZLQUFQAQ"},
		"en": {"Politics", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFZ4ZERBU0FtVnVLQUFQAQ"},
		"ja": {"政治", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFZ4ZERBU0FtcGhLQUFQAQ"},
		"zh": {"政治", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRFZ4ZERBU0JYcG9MVU5PS0FBUAE"},
	},
	"entertainment": {
		"ko": {"엔터테인먼트", "CAAqJggKIiBDQkFTRWdvSUwyMHZNREpxYW5RU0FtdHZHZ0pMVWlnQVAB"},
		"en": {"Entertainment", "CAAqJggKIiBDQkFTRWdvSUwyMHZNREpxYW5RU0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"エンタメ", "CAAqJggKIiBDQkFTRWdvSUwyMHZNREpxYW5RU0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"娱乐", "CAAqKggKIiRDQkFTRlFvSUwyMHZNREpxYW5RU0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"celebrity": {
		"ko": {"연예", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ5Wm5vU0FtdHZLQUFQAQ"},
		"en": {"Celebrities", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ5Wm5vU0FtVnVLQUFQAQ"},
		"ja": {"有名人", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ5Wm5vU0FtcGhLQUFQAQ"},
		"zh": {"明星", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREZ5Wm5vU0JYcG9MVU5PS0FBUAE"},
	},
	"tv": {
		"ko": {"TV", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRGRqTlRJU0FtdHZLQUFQAQ"},
		"en": {"TV", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRGRqTlRJU0FtVnVLQUFQAQ"},
		"ja": {"テレビ", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRGRqTlRJU0FtcGhLQUFQAQ"},
		"zh": {"电视", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRGRqTlRJU0JYcG9MVU5PS0FBUAE"},
	},
	"music": {
		"ko": {"음악", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFJ5YkdZU0FtdHZLQUFQAQ"},
		"en": {"Music", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFJ5YkdZU0FtVnVLQUFQAQ"},
		"ja": {"音楽", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFJ5YkdZU0FtcGhLQUFQAQ"},
		"zh": {"音乐", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRFJ5YkdZU0JYcG9MVU5PS0FBUAE"},
	},
	"movies": {
		"ko": {"영화", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZUc0U0FtdHZLQUFQAQ"},
		"en": {"Movies", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZUc0U0FtVnVLQUFQAQ"},
		"ja": {"映画", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZUc0U0FtcGhLQUFQAQ"},
		"zh": {"影视", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREoyZUc0U0JYcG9MVU5PS0FBUAE"},
	},
	"sports": {
		"ko": {"스포츠", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFp1ZEdvU0FtdHZHZ0pMVWlnQVAB"},
		"en": {"Sports", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFp1ZEdvU0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"スポーツ", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRFp1ZEdvU0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"体育", "CAAqKggKIiRDQkFTRlFvSUwyMHZNRFp1ZEdvU0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"soccer": {
		"ko": {"축구", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZURRU0FtdHZLQUFQAQ"},
		"en": {"Soccer", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZURRU0FtVnVLQUFQAQ"},
		"ja": {"サッカー", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREoyZURRU0FtcGhLQUFQAQ"},
		"zh": {"足球", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREoyZURRU0JYcG9MVU5PS0FBUAE"},
	},
	"baseball": {
		"ko": {"야구", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0YW5vU0FtdHZLQUFQAQ"},
		"en": {"Baseball", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0YW5vU0FtVnVLQUFQAQ"},
		"ja": {"野球", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0YW5vU0FtcGhLQUFQAQ"},
		"zh": {"棒球", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREU0YW5vU0JYcG9MVU5PS0FBUAE"},
	},
	"basketball": {
		"ko": {"농구", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0ZHpnU0FtdHZLQUFQAQ"},
		"en": {"Basketball", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0ZHpnU0FtVnVLQUFQAQ"},
		"ja": {"バスケットボール", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREU0ZHpnU0FtcGhLQUFQAQ"},
		"zh": {"NBA", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREU0ZHpnU0JYcG9MVU5PS0FBUAE"},
	},
	"business": {
		"ko": {"비즈니스", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtdHZHZ0pMVWlnQVAB"},
		"en": {"Business", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"ビジネス", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"商业", "CAAqKggKIiRDQkFTRlFvSUwyMHZNRGx6TVdZU0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"economy": {
		"ko": {"경제", "CAAqIggKIhxDQkFTRHdvSkwyMHZNREpmTjNRU0FtdHZLQUFQAQ"},
		"en": {"Economy", "CAAqIggKIhxDQkFTRHdvSkwyMHZNREpmTjNRU0FtVnVLQUFQAQ"},
		"ja": {"経済", "CAAqIggKIhxDQkFTRHdvSkwyMHZNREpmTjNRU0FtcGhLQUFQAQ"},
		"zh": {"金融观察", "CAAqJggKIiBDQkFTRWdvSkwyMHZNREpmTjNRU0FtdHZHZ0pMVWlnQVAB"},
	},
	"finance": {
		"ko": {"금융", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREpmTjNRU0FtdHZLQUFQAQ"},
		"en": {"Finance", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREpmTjNRU0FtVnVLQUFQAQ"},
		"ja": {"ファイナンス", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREpmTjNRU0FtcGhLQUFQAQ"},
		"zh": {"财经", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREpmTjNRU0JYcG9MVU5PS0FBUAE"},
	},
	"digital_currency": {
		"ko": {"디지털 통화", "CAAqJAgKIh5DQkFTRUFvS0wyMHZNSEk0YkhsM054SUNhMjhvQUFQAQ"},
		"en": {"Digital currencies", "CAAqJAgKIh5DQkFTRUFvS0wyMHZNSEk0YkhsM054SUNaVzRvQUFQAQ"},
		"ja": {"デジタル通貨", "CAAqJAgKIh5DQkFTRUFvS0wyMHZNSEk0YkhsM054SUNhbUVvQUFQAQ"},
		"zh": {"数字货币", "CAAqKAgKIiJDQkFTRXdvS0wyMHZNSEk0YkhsM054SUZlbWd0UTA0b0FBUAE"},
	},
	"technology": {
		"ko": {"기술", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGRqTVhZU0FtdHZHZ0pMVWlnQVAB"},
		"en": {"Technology", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGRqTVhZU0FtVnVHZ0pWVXlnQVAB"},
		"ja": {"テクノロジー", "CAAqJggKIiBDQkFTRWdvSUwyMHZNRGRqTVhZU0FtcGhHZ0pLVUNnQVAB"},
		"zh": {"科技", "CAAqKggKIiRDQkFTRlFvSUwyMHZNRGRqTVhZU0JYcG9MVU5PR2dKRFRpZ0FQAQ"},
	},
	"mobile": {
		"ko": {"모바일", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFV3YXpnU0FtdHZLQUFQAQ"},
		"en": {"Mobile", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFV3YXpnU0FtVnVLQUFQAQ"},
		"ja": {"モバイル", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNRFV3YXpnU0FtcGhLQUFQAQ"},
		"zh": {"移动设备", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNRFV3YXpnU0JYcG9MVU5PS0FBUAE"},
	},
	"games": {
		"ko": {"게임", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ0ZHpFU0FtdHZLQUFQAQ"},
		"en": {"Games", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ0ZHpFU0FtVnVLQUFQAQ"},
		"ja": {"ゲーム", "CAAqIQgKIhtDQkFTRGdvSUwyMHZNREZ0ZHpFU0FtcGhLQUFQAQ"},
		"zh": {"游戏", "CAAqJQgKIh9DQkFTRVFvSUwyMHZNREZ0ZHpFU0JYcG9MVU5PS0FBUAE"},
	},
	"ai": {
		"ko": {"인공지능", "CAAqIAgKIhpDQkFTRFFvSEwyMHZNRzFyZWhJQ2EyOG9BQVAB"},
		"en": {"Artificial Intelligence", "CAAqIAgKIhpDQkFTRFFvSEwyMHZNRzFyZWhJQ1pXNG9BQVAB"},
		"ja": {"人工知能", "CAAqIAgKIhpDQkFTRFFvSEwyMHZNRzFyZWhJQ2FtRW9BQVAB"},
		"zh": {"人工智能", "CAAqJAgKIh5DQkFTRUFvSEwyMHZNRzFyZWhJRmVtZ3RRMDRvQUFQAQ"},
	},
}

// topicCategories groups topic keywords into presentation categories
// with localized labels.
var topicCategories = []struct {
	labels   map[string]string
	keywords []string
}{
	{
		labels: map[string]string{
			"en": "Headlines news", "ko": "헤드라인 뉴스",
			"ja": "ヘッドライン ニュース", "zh": "头条新闻",
		},
		keywords: []string{"headlines", "korea", "us", "japan", "china", "world", "politics"},
	},
	{
		labels: map[string]string{
			"en": "Entertainment news", "ko": "연예 뉴스",
			"ja": "芸能関連のニュース", "zh": "娱乐新闻",
		},
		keywords: []string{"entertainment", "celebrity", "tv", "music", "movies"},
	},
	{
		labels: map[string]string{
			"en": "Sports news", "ko": "스포츠 뉴스",
			"ja": "スポーツ関連のニュース", "zh": "体育新闻",
		},
		keywords: []string{"sports", "soccer", "baseball", "basketball"},
	},
	{
		labels: map[string]string{
			"en": "Business news", "ko": "비즈니스 뉴스",
			"ja": "ビジネス関連のニュース", "zh": "财经新闻",
		},
		keywords: []string{"business", "economy", "finance", "digital_currency"},
	},
	{
		labels: map[string]string{
			"en": "Technology news", "ko": "기술 뉴스",
			"ja": "テクノロジー関連のニュース", "zh": "科技新闻",
		},
		keywords: []string{"technology", "mobile", "games", "ai"},
	},
}

// generalCategory labels the non-topic (raw RSS URL) mode.
var generalCategory = map[string]string{
	"ko": "주제",
	"en": "Topics",
	"ja": "トピック",
	"zh": "主题",
}

var newsPrefixes = map[string]string{
	"zh": "Google 新闻",
	"en": "Google News",
	"ja": "Google ニュース",
	"ko": "Google 뉴스",
	"vi": "Google Tin tức",
	"th": "Google ข่าว",
	"tr": "Google Haberler",
	"ru": "Google Новости",
	"de": "Google Nachrichten",
	"fr": "Google Actualités",
	"es": "Google Noticias",
	"it": "Google Notizie",
	"nl": "Google Nieuws",
	"pt": "Google Notícias",
}

var countryConfigs = map[string]CountryConfig{
	"KR": {"ko", "KR:ko", "Asia/Seoul", "2006년 01월 02일 15:04:05 (KST)"},
	"JP": {"ja", "JP:ja", "Asia/Tokyo", "2006年01月02日 15:04:05 (JST)"},
	"CN": {"zh-CN", "CN:zh-Hans", "Asia/Shanghai", "2006年01月02日 15:04:05 (CST)"},
	"TW": {"zh-TW", "TW:zh-Hant", "Asia/Taipei", "2006年01月02日 15:04:05 (NST)"},
	"VN": {"vi", "VN:vi", "Asia/Ho_Chi_Minh", "02/01/2006 15:04:05 (ICT)"},
	"IN": {"en-IN", "IN:en", "Asia/Kolkata", "02/01/2006 03:04:05 PM (IST)"},
	"DE": {"de", "DE:de", "Europe/Berlin", "02.01.2006 15:04:05 (CET)"},
	"FR": {"fr", "FR:fr", "Europe/Paris", "02/01/2006 15:04:05 (CET)"},
	"GB": {"en-GB", "GB:en", "Europe/London", "02/01/2006 15:04:05 (GMT)"},
	"US": {"en-US", "US:en", "America/New_York", "2006-01-02 03:04:05 PM (EST)"},
	"CA": {"en-CA", "CA:en", "America/Toronto", "2006-01-02 03:04:05 PM (EST)"},
	"AU": {"en-AU", "AU:en", "Australia/Sydney", "02/01/2006 03:04:05 PM (AEST)"},
	"BR": {"pt-BR", "BR:pt-419", "America/Sao_Paulo", "02/01/2006 15:04:05 (BRT)"},
	"MX": {"es-419", "MX:es-419", "America/Mexico_City", "02/01/2006 15:04:05 (CST)"},
}

// NewsPrefix returns the localized "Google News" label for a language.
func NewsPrefix(lang string) string {
	if prefix, ok := newsPrefixes[lang]; ok {
		return prefix
	}
	return "Google News"
}

// TopicCategory returns the localized category label for a topic
// keyword.
func TopicCategory(keyword, lang string) string {
	for _, cat := range topicCategories {
		for _, kw := range cat.keywords {
			if kw == keyword {
				if label, ok := cat.labels[lang]; ok {
					return label
				}
				return cat.labels["en"]
			}
		}
	}
	if lang == "ko" {
		return "기타 뉴스"
	}
	return "Other News"
}

// GeneralCategory returns the localized label used when running against
// a raw RSS URL instead of a topic.
func GeneralCategory(lang string) string {
	if label, ok := generalCategory[lang]; ok {
		return label
	}
	return "Topics"
}

// Topic returns the localized topic info for a keyword, falling back to
// English when the language is not mapped.
func Topic(keyword, lang string) (TopicInfo, bool) {
	langs, ok := topicMap[keyword]
	if !ok {
		return TopicInfo{Name: keyword}, false
	}
	if info, ok := langs[lang]; ok {
		return info, true
	}
	if info, ok := langs["en"]; ok {
		return info, true
	}
	return TopicInfo{Name: keyword}, false
}

// KnownTopic reports whether the keyword is a mapped topic.
func KnownTopic(keyword string) bool {
	_, ok := topicMap[keyword]
	return ok
}

// TopicByID resolves an RSS topic URL back to the topic name and
// keyword by matching the trailing topic ID against the topic map.
func TopicByID(rssURL string) (name, keyword string, ok bool) {
	u, err := url.Parse(rssURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(u.Path, "/")
	topicID := parts[len(parts)-1]
	for kw, langs := range topicMap {
		for _, info := range langs {
			if info.ID == topicID {
				return info.Name, kw, true
			}
		}
	}
	return "", "", false
}

// CountryEmoji converts a two-letter country code into its Unicode flag
// emoji by offsetting each letter into the regional indicator range.
func CountryEmoji(countryCode string) string {
	if len(countryCode) != 2 {
		return ""
	}
	code := strings.ToUpper(countryCode)
	return string(rune(code[0])+127397) + string(rune(code[1])+127397)
}

var (
	hlRe = regexp.MustCompile(`hl=(\w+)`)
	glRe = regexp.MustCompile(`gl=(\w+)`)
)

// LanguageFromParams extracts the language code from the hl query
// parameter. Anything outside Korean collapses to English.
func LanguageFromParams(params string) string {
	if m := hlRe.FindStringSubmatch(params); m != nil {
		if strings.HasPrefix(strings.ToLower(m[1]), "ko") {
			return "ko"
		}
	}
	return "en"
}

// CountryFromParams extracts the country code from the gl query
// parameter, defaulting to KR.
func CountryFromParams(params string) string {
	if m := glRe.FindStringSubmatch(params); m != nil {
		return m[1]
	}
	return "KR"
}

// IsKoreanParams reports whether the query parameters select the Korean
// edition.
func IsKoreanParams(params string) bool {
	return strings.Contains(params, "hl=ko") &&
		strings.Contains(params, "gl=KR") &&
		strings.Contains(params, "ceid=KR%3Ako")
}

// TopicURL builds the RSS URL for a topic ID with the given edition
// query parameters.
func TopicURL(topicID, params string) string {
	return "https://news.google.com/rss/topics/" + topicID + params
}
