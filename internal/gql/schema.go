package gql

// Schema is the SDL served at /graphql. Connections are forward-only and
// relay-shaped; every list query accepts first/after and reports totalCount.
const Schema = `
schema {
    query: Query
    mutation: Mutation
}

scalar Time

enum UserType {
    CRITIC
    REGULAR
}

enum SortDirection {
    ASC
    DESC
}

enum MovieSortBy {
    TITLE
    RELEASE_DATE
    CRITIC_SCORE
    REGULAR_SCORE
    VIEWED_USER_COUNT
}

enum ReviewSortBy {
    POST_TIME
    SCORE
    THANK_COUNT
    COMMENT_COUNT
}

enum CollectionSortBy {
    NAME
    CREATION_DATE
    LIKE_COUNT
}

enum CrewRole {
    DIRECTOR
    WRITER
    DOP
    EDITOR
    COMPOSER
}

type PageInfo {
    hasNextPage: Boolean!
    endCursor: String
}

type User {
    id: ID!
    username: String!
    name: String!
    avatarUrl: String
    userType: UserType!
    reviews(first: Int, after: String): ReviewConnection!
    collections(first: Int, after: String): CollectionConnection!
}

type Genre {
    id: ID!
    name: String!
}

type Company {
    id: ID!
    name: String!
}

type CrewMember {
    id: ID!
    name: String!
    avatarUrl: String
}

type ActingCredit {
    crew: CrewMember!
    characterName: String!
}

type Movie {
    id: ID!
    title: String!
    posterUrl: String
    releaseDate: Time!
    runningTime: Int!
    criticScore: Float
    criticReviewCount: Int!
    regularScore: Float
    regularReviewCount: Int!
    viewedUserCount: Int!
    isViewedByViewer: Boolean
    genres: [Genre!]!
    productionCompanies: [Company!]!
    distributionCompanies: [Company!]!
    crew(role: CrewRole!): [CrewMember!]!
    cast: [ActingCredit!]!
    reviews(sortBy: ReviewSortBy, sortDirection: SortDirection, first: Int, after: String): ReviewConnection!
}

type Review {
    id: ID!
    movie: Movie!
    author: User!
    authorType: UserType!
    title: String!
    content: String!
    score: Int!
    externalUrl: String
    postTime: Time!
    lastUpdateTime: Time
    thankCount: Int!
    commentCount: Int!
    isMine: Boolean
    isThankedByViewer: Boolean
    thankUsers(first: Int, after: String): UserConnection!
    comments(first: Int, after: String): CommentConnection!
}

type Comment {
    id: ID!
    review: Review!
    author: User!
    content: String!
    isRemoved: Boolean!
    postTime: Time!
    lastUpdateTime: Time
}

type Collection {
    id: ID!
    name: String!
    author: User!
    creationTime: Time!
    lastUpdateTime: Time
    likeCount: Int!
    isLikedByViewer: Boolean
    movies(first: Int, after: String): MovieConnection!
    likeUsers(first: Int, after: String): UserConnection!
}

type MovieEdge {
    node: Movie!
    cursor: String!
}

type MovieConnection {
    edges: [MovieEdge!]!
    pageInfo: PageInfo!
    totalCount: Int!
}

type ReviewEdge {
    node: Review!
    cursor: String!
}

type ReviewConnection {
    edges: [ReviewEdge!]!
    pageInfo: PageInfo!
    totalCount: Int!
}

type CommentEdge {
    node: Comment!
    cursor: String!
}

type CommentConnection {
    edges: [CommentEdge!]!
    pageInfo: PageInfo!
    totalCount: Int!
}

type CollectionEdge {
    node: Collection!
    cursor: String!
}

type CollectionConnection {
    edges: [CollectionEdge!]!
    pageInfo: PageInfo!
    totalCount: Int!
}

type UserEdge {
    node: User!
    cursor: String!
}

type UserConnection {
    edges: [UserEdge!]!
    pageInfo: PageInfo!
    totalCount: Int!
}

type AuthPayload {
    accessToken: String!
    user: User!
}

type UploadUrl {
    uploadUrl: String!
    objectUrl: String!
}

input SignUpInput {
    username: String!
    email: String!
    password: String!
    name: String!
    dateOfBirth: Time!
    userType: UserType!
    avatarUrl: String
}

input CreateReviewInput {
    movieId: ID!
    title: String!
    content: String!
    score: Int!
    externalUrl: String
}

input EditReviewInput {
    title: String
    content: String
    score: Int
    externalUrl: String
}

input CreateCommentInput {
    reviewId: ID!
    content: String!
}

input EditCommentInput {
    content: String!
}

type Query {
    viewer: User
    movies(titleContains: String, sortBy: MovieSortBy, sortDirection: SortDirection, first: Int, after: String): MovieConnection!
    movie(id: ID!): Movie
    review(id: ID!): Review
    collection(id: ID!): Collection
    user(id: ID!): User
    collections(nameContains: String, sortBy: CollectionSortBy, sortDirection: SortDirection, first: Int, after: String): CollectionConnection!
}

type Mutation {
    login(username: String!, password: String!): AuthPayload!
    signUp(input: SignUpInput!): AuthPayload!
    createReview(input: CreateReviewInput!): Review!
    editReview(id: ID!, input: EditReviewInput!): Review!
    deleteReview(id: ID!): Boolean!
    thankReview(reviewId: ID!, thank: Boolean!): Review!
    createComment(input: CreateCommentInput!): Comment!
    editComment(id: ID!, input: EditCommentInput!): Comment!
    deleteComment(id: ID!): Comment!
    createCollection(name: String!): Collection!
    editCollection(id: ID!, name: String!): Collection!
    deleteCollection(id: ID!): Boolean!
    addToCollection(id: ID!, movieIds: [ID!]!): Collection!
    removeFromCollection(id: ID!, movieIds: [ID!]!): Collection!
    likeCollection(id: ID!, like: Boolean!): Collection!
    setMovieViewed(movieId: ID!, viewed: Boolean!): Movie!
    createUploadUrl(filename: String!): UploadUrl!
}
`
