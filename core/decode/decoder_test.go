package decode

import (
	"strings"
	"testing"

	cerrors "marketplace-client-api/core/errors"
)

const marketListingXML = `<?xml version="1.0" encoding="UTF-8"?>
<marketplace>
  <market id="31" name="Tools" url="https://m.example/category/markets/tools">
    <category count="3" id="38" name="Build" url="https://m.example/category/free-tagging/build"/>
    <category count="7" id="41" name="Editor" url="https://m.example/category/free-tagging/editor"/>
  </market>
  <market id="32" name="RCP Applications" url="https://m.example/category/markets/rcp"/>
</marketplace>`

func TestUnmarshal_MarketListing(t *testing.T) {
	mp, err := Unmarshal(strings.NewReader(marketListingXML), "https://m.example/api/p")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if len(mp.Markets) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(mp.Markets))
	}

	tools := mp.Markets[0]
	if tools.ID != "31" || tools.Name != "Tools" {
		t.Errorf("unexpected first market: %+v", tools.Identifiable)
	}
	if len(tools.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(tools.Categories))
	}
	if tools.Categories[0].Count != 3 {
		t.Errorf("category count = %d, want 3", tools.Categories[0].Count)
	}
	if tools.Categories[1].ID != "41" {
		t.Errorf("second category id = %q, want 41", tools.Categories[1].ID)
	}
}

const nodeXML = `<?xml version="1.0" encoding="UTF-8"?>
<marketplace>
<node id="123" name="Great Plugin" url="https://m.example/content/great-plugin">
  <type>resource</type>
  <owner>Jane Doe</owner>
  <shortdescription>Does useful things</shortdescription>
  <body>&lt;p&gt;Long description&lt;/p&gt;</body>
  <created>1388577600</created>
  <changed>1420113600</changed>
  <license>EPL-2.0</license>
  <companyname>Example Inc</companyname>
  <status>Production/Stable</status>
  <version>1.2.3</version>
  <eclipseversion>4.9</eclipseversion>
  <updateurl>https://update.example/site</updateurl>
  <favorited>12</favorited>
  <installstotal>3400</installstotal>
  <installsrecent>51</installsrecent>
  <ius>
    <iu id="org.example.feature" optional="1" selected="1"/>
    <iu>org.example.other.feature</iu>
  </ius>
  <platforms>
    <platform>Windows</platform>
    <platform>Linux</platform>
  </platforms>
  <categories>
    <category id="38" name="Build" url="https://m.example/category/free-tagging/build"/>
  </categories>
  <tags>
    <tag id="9" name="build" url="https://m.example/category/free-tagging/build"/>
  </tags>
</node>
</marketplace>`

func TestUnmarshal_NodeDocument(t *testing.T) {
	mp, err := Unmarshal(strings.NewReader(nodeXML), "https://m.example/node/123/api/p")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if len(mp.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(mp.Nodes))
	}
	n := mp.Nodes[0]

	if n.ID != "123" || n.Name != "Great Plugin" {
		t.Errorf("unexpected node identity: %+v", n.Identifiable)
	}
	if n.Owner != "Jane Doe" {
		t.Errorf("owner = %q", n.Owner)
	}
	if n.Body != "<p>Long description</p>" {
		t.Errorf("body = %q", n.Body)
	}
	if n.Created.Unix() != 1388577600 || n.Changed.Unix() != 1420113600 {
		t.Errorf("timestamps = %v / %v", n.Created, n.Changed)
	}
	if n.Favorited != 12 || n.InstallsTotal != 3400 || n.InstallsRecent != 51 {
		t.Errorf("counters = %d %d %d", n.Favorited, n.InstallsTotal, n.InstallsRecent)
	}

	if len(n.IUs) != 2 {
		t.Fatalf("expected 2 install units, got %d", len(n.IUs))
	}
	if n.IUs[0].ID != "org.example.feature" || !n.IUs[0].Optional || !n.IUs[0].Selected {
		t.Errorf("first iu = %+v", n.IUs[0])
	}
	if n.IUs[1].ID != "org.example.other.feature" || n.IUs[1].Optional {
		t.Errorf("second iu = %+v", n.IUs[1])
	}
	if !n.Installable() {
		t.Error("node with install units should be installable")
	}

	if len(n.Platforms) != 2 || n.Platforms[0] != "Windows" {
		t.Errorf("platforms = %v", n.Platforms)
	}
	if len(n.Categories) != 1 || n.Categories[0].ID != "38" {
		t.Errorf("nested categories = %v", n.Categories)
	}
	if len(n.Tags) != 1 || n.Tags[0].Name != "build" {
		t.Errorf("tags = %v", n.Tags)
	}
}

func TestUnmarshal_SearchResult(t *testing.T) {
	body := `<marketplace>
	<search count="250">
	  <node id="1" name="First" url="https://m.example/content/first"/>
	  <node id="2" name="Second" url="https://m.example/content/second"/>
	</search>
	</marketplace>`

	mp, err := Unmarshal(strings.NewReader(body), "u")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if mp.Search == nil {
		t.Fatal("expected a search sub-result")
	}
	if mp.Search.MatchCount != 250 {
		t.Errorf("match count = %d, want 250", mp.Search.MatchCount)
	}
	if len(mp.Search.Nodes) != 2 || mp.Search.Nodes[1].ID != "2" {
		t.Errorf("search nodes = %v", mp.Search.Nodes)
	}
}

func TestUnmarshal_NamedListingsAndNews(t *testing.T) {
	body := `<marketplace>
	<featured count="1"><node id="5" name="F"/></featured>
	<recent count="1"><node id="6" name="R"/></recent>
	<popular count="1"><node id="7" name="P"/></popular>
	<favorites count="1"><node id="8" name="V"/></favorites>
	<related count="1"><node id="9" name="L"/></related>
	<news shorttitle="Community" timestamp="1420113600">https://m.example/news</news>
	</marketplace>`

	mp, err := Unmarshal(strings.NewReader(body), "u")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	for name, r := range map[string]bool{
		"featured":  mp.Featured != nil && mp.Featured.Nodes[0].ID == "5",
		"recent":    mp.Recent != nil && mp.Recent.Nodes[0].ID == "6",
		"popular":   mp.Popular != nil && mp.Popular.Nodes[0].ID == "7",
		"favorites": mp.Favorites != nil && mp.Favorites.Nodes[0].ID == "8",
		"related":   mp.Related != nil && mp.Related.Nodes[0].ID == "9",
	} {
		if !r {
			t.Errorf("sub-result %s not decoded correctly", name)
		}
	}

	if mp.News == nil {
		t.Fatal("expected a news entry")
	}
	if mp.News.URL != "https://m.example/news" || mp.News.ShortTitle != "Community" || mp.News.Timestamp != 1420113600 {
		t.Errorf("news = %+v", mp.News)
	}
}

func TestUnmarshal_CatalogBranding(t *testing.T) {
	body := `<catalogs>
	<catalog id="org.example" name="Example Marketplace" url="https://m.example" selfContained="1" icon="https://m.example/icon.png">
	  <description>The example catalog</description>
	  <wizard title="Example Marketplace Catalog" icon="https://m.example/wizard.png">
	    <searchtab enabled="1">Search</searchtab>
	    <populartab enabled="1">Popular</populartab>
	    <recenttab enabled="0">Recent</recenttab>
	  </wizard>
	</catalog>
	</catalogs>`

	mp, err := Unmarshal(strings.NewReader(body), "u")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if len(mp.Catalogs) != 1 {
		t.Fatalf("expected 1 catalog, got %d", len(mp.Catalogs))
	}
	c := mp.Catalogs[0]
	if !c.SelfContained || c.Description != "The example catalog" {
		t.Errorf("catalog = %+v", c)
	}
	if c.Wizard == nil {
		t.Fatal("expected wizard branding")
	}
	if !c.Wizard.SearchTab || !c.Wizard.PopularTab || c.Wizard.RecentTab {
		t.Errorf("wizard tabs = %+v", c.Wizard)
	}
}

func TestUnmarshal_DropsIllegalControlCharacters(t *testing.T) {
	body := "<marketplace><node id=\"1\" name=\"N\"><shortdescription>bad\x01char</shortdescription></node></marketplace>"

	mp, err := Unmarshal(strings.NewReader(body), "u")
	if err != nil {
		t.Fatalf("Unmarshal should survive illegal control characters: %v", err)
	}

	if got := mp.Nodes[0].ShortDescription; got != "badchar" {
		t.Errorf("short description = %q, control character should be absent", got)
	}
}

func TestUnmarshal_UnknownElementsAreSwallowed(t *testing.T) {
	body := `<marketplace>
	<mystery><deep><deeper>text</deeper></deep></mystery>
	<node id="1" name="N"/>
	</marketplace>`

	mp, err := Unmarshal(strings.NewReader(body), "u")
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(mp.Nodes) != 1 {
		t.Errorf("expected the node after the unknown subtree, got %d nodes", len(mp.Nodes))
	}
}

func TestUnmarshal_TokenizerErrorIsMalformedWithPreview(t *testing.T) {
	body := "<marketplace><<not-xml"

	_, err := Unmarshal(strings.NewReader(body), "https://m.example/api/p")
	if !cerrors.IsMalformedContent(err) {
		t.Fatalf("expected MalformedContentError, got %v", err)
	}

	var mc *cerrors.MalformedContentError
	if !asMalformed(err, &mc) {
		t.Fatal("could not extract MalformedContentError")
	}
	if !strings.Contains(mc.Preview, "<marketplace>") {
		t.Errorf("preview should show the raw response, got %q", mc.Preview)
	}
}

func TestUnmarshal_EmptyResultIsMalformed(t *testing.T) {
	_, err := Unmarshal(strings.NewReader("<unrelated/>"), "u")
	if !cerrors.IsMalformedContent(err) {
		t.Fatalf("a parse that produces no root model should be MalformedContent, got %v", err)
	}
}

func asMalformed(err error, target **cerrors.MalformedContentError) bool {
	for err != nil {
		if mc, ok := err.(*cerrors.MalformedContentError); ok {
			*target = mc
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
