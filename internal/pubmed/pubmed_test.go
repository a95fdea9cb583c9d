package pubmed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345678</PMID>
      <Article>
        <ArticleTitle>Sialidosis in a dish</ArticleTitle>
        <ArticleDate>
          <Year>2023</Year>
          <Month>04</Month>
        </ArticleDate>
        <AuthorList>
          <Author>
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
            <AffiliationInfo>
              <Affiliation>Dept of Biology, Harvard University, 02138, USA.</Affiliation>
            </AffiliationInfo>
            <AffiliationInfo>
              <Affiliation>Broad Institute, Cambridge, USA.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <CollectiveName>The Sialidosis Consortium</CollectiveName>
          </Author>
        </AuthorList>
      </Article>
      <MeshHeadingList>
        <MeshHeading>
          <DescriptorName UI="D012798">Sialic Acids</DescriptorName>
        </MeshHeading>
        <MeshHeading>
          <DescriptorName UI="D009125">Mucolipidoses</DescriptorName>
        </MeshHeading>
      </MeshHeadingList>
      <KeywordList>
        <Keyword>sialidosis</Keyword>
        <Keyword>lysosome</Keyword>
      </KeywordList>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>87654321</PMID>
      <Article>
        <ArticleTitle>No metadata here</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Roe</LastName>
            <ForeName>Richard</ForeName>
            <Initials>R</Initials>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestParse(t *testing.T) {
	articles, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "12345678", first.PMID)
	assert.Equal(t, "Sialidosis in a dish", first.Title)
	assert.Equal(t, "2023", first.Year)
	assert.Equal(t, "sialidosis, lysosome", first.KeywordsJoined())
	assert.Equal(t, "D012798, D009125", first.MeshIDs())

	require.Len(t, first.Authors, 2)
	jane := first.Authors[0]
	assert.False(t, jane.IsCollective())
	assert.Equal(t, "Jane Doe", jane.FullName())
	assert.Equal(t, "J", jane.Initials)
	assert.Len(t, jane.Affiliations, 2)

	assert.True(t, first.Authors[1].IsCollective())

	second := articles[1]
	assert.Equal(t, "87654321", second.PMID)
	assert.Empty(t, second.Year)
	assert.Empty(t, second.KeywordsJoined())
	assert.Empty(t, second.MeshIDs())
	assert.Empty(t, second.Authors[0].Affiliations)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("<PubmedArticleSet><PubmedArticle>"))
	assert.ErrorContains(t, err, "parsing citation XML")
}

func TestParseEmptySet(t *testing.T) {
	articles, err := Parse(strings.NewReader("<PubmedArticleSet></PubmedArticleSet>"))
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("does-not-exist.xml")
	assert.ErrorContains(t, err, "opening citation XML")
}
